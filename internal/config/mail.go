package config

import "fmt"

// MailConfig holds SMTP transport settings plus the public host/port used to
// build verification links.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
	URLHost  string
	URLPort  int
}

// MailConfigFromEnv reads the MAIL_* and URL_* environment variables.
func MailConfigFromEnv() MailConfig {
	return MailConfig{
		Host:     GetString("MAIL_HOST", "localhost"),
		Port:     GetInt("MAIL_PORT", 587),
		User:     GetString("MAIL_USER", ""),
		Pass:     GetString("MAIL_PASS", ""),
		From:     GetString("MAIL_FROM", GetString("MAIL_USER", "no-reply@localhost")),
		FromName: GetString("MAIL_FROM_NAME", "Intelligent Image Analyzer"),
		URLHost:  GetString("URL_HOST", "localhost"),
		URLPort:  GetInt("URL_PORT", 8080),
	}
}

// VerificationURL builds the public link a user clicks to verify an email.
func (c MailConfig) VerificationURL(key string) string {
	return fmt.Sprintf("http://%s:%d/auth/verify?key=%s", c.URLHost, c.URLPort, key)
}
