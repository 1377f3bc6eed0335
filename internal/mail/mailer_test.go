package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/config"
)

/*
Mailer Test Cases:

1. TestBuildVerificationMessage
   - Message carries the headers, HTML content type and the verification link

2. TestNewSMTPDispatcher_RequiresHost

3. TestSMTPDispatcher_CancelledContext
   - Cancelled context fails before dialing the relay
*/

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@example.com",
		FromName: "Image Analyzer",
		URLHost:  "app.example.com",
		URLPort:  8080,
	}
}

func TestBuildVerificationMessage(t *testing.T) {
	msg := string(BuildVerificationMessage(testMailConfig(), "ada@example.com", "key-123"))

	assert.Contains(t, msg, "From: Image Analyzer <noreply@example.com>")
	assert.Contains(t, msg, "To: ada@example.com")
	assert.Contains(t, msg, "Subject: Verify your email")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "/auth/verify?key=key-123")
}

func TestNewSMTPDispatcher_RequiresHost(t *testing.T) {
	_, err := NewSMTPDispatcher(config.MailConfig{})
	assert.Error(t, err)
}

func TestSMTPDispatcher_CancelledContext(t *testing.T) {
	d, err := NewSMTPDispatcher(testMailConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, d.SendVerification(ctx, "ada@example.com", "key-123"))
}
