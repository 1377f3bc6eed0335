package config

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BrokerConfig holds the connection parameters for the message broker.
// TLS is the default; set BROKER_TLS=false for an explicit plaintext
// downgrade in local development.
type BrokerConfig struct {
	User       string
	Pass       string
	Host       string
	Port       int
	Queue      string
	UseTLS     bool
	CertPath   string
	KeyPath    string
	Passphrase string
	CAPath     string
}

// BrokerConfigFromEnv reads the BROKER_* environment variables.
func BrokerConfigFromEnv() BrokerConfig {
	useTLS := GetBool("BROKER_TLS", true)
	defaultPort := 5671
	if !useTLS {
		defaultPort = 5672
	}
	return BrokerConfig{
		User:       GetString("BROKER_USER", "guest"),
		Pass:       GetString("BROKER_PASS", "guest"),
		Host:       GetString("BROKER_HOST", "localhost"),
		Port:       GetInt("BROKER_PORT", defaultPort),
		Queue:      GetString("BROKER_QUEUE", "identity.rpc"),
		UseTLS:     useTLS,
		CertPath:   GetString("BROKER_CERT_PATH", ""),
		KeyPath:    GetString("BROKER_KEY_PATH", ""),
		Passphrase: GetString("BROKER_PASSPHRASE", ""),
		CAPath:     GetString("BROKER_CA_PATH", ""),
	}
}

// URL renders the AMQP connection URL. The scheme follows the TLS setting.
func (c BrokerConfig) URL() string {
	scheme := "amqps"
	if !c.UseTLS {
		scheme = "amqp"
	}
	return fmt.Sprintf("%s://%s:%s@%s:%d/", scheme, c.User, c.Pass, c.Host, c.Port)
}

// NewBrokerConnection dials the broker and opens a channel. With TLS enabled
// the client certificate and CA pool are loaded from the configured paths;
// an encrypted private key is decrypted with BROKER_PASSPHRASE.
func NewBrokerConnection(cfg BrokerConfig) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	if cfg.UseTLS {
		tlsCfg, tlsErr := cfg.tlsConfig()
		if tlsErr != nil {
			return nil, nil, fmt.Errorf("broker TLS config: %w", tlsErr)
		}
		conn, err = amqp.DialTLS(cfg.URL(), tlsCfg)
	} else {
		conn, err = amqp.DialConfig(cfg.URL(), amqp.Config{
			Locale: "en_US",
			Dial:   amqp.DefaultDial(10 * time.Second),
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open broker channel: %w", err)
	}

	return conn, ch, nil
}

func (c BrokerConfig) tlsConfig() (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if c.CAPath != "" {
		caPEM, err := os.ReadFile(c.CAPath)
		if err != nil {
			return nil, fmt.Errorf("read CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("no certificates parsed from %s", c.CAPath)
		}
		tlsCfg.RootCAs = pool
	}

	if c.CertPath != "" && c.KeyPath != "" {
		cert, err := loadKeyPair(c.CertPath, c.KeyPath, c.Passphrase)
		if err != nil {
			return nil, err
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return tlsCfg, nil
}

// loadKeyPair loads a client certificate, decrypting a passphrase-protected
// PEM private key when necessary.
func loadKeyPair(certPath, keyPath, passphrase string) (tls.Certificate, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read client cert: %w", err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read client key: %w", err)
	}

	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return tls.Certificate{}, fmt.Errorf("no PEM block in %s", keyPath)
	}
	if x509.IsEncryptedPEMBlock(block) {
		der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("decrypt client key: %w", err)
		}
		keyPEM = pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der})
	}

	return tls.X509KeyPair(certPEM, keyPEM)
}
