package email

import (
	"bytes"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSender(t *testing.T) {
	t.Run("requires host and sender", func(t *testing.T) {
		_, err := NewSMTPSender(config.SMTPConfig{Port: 587}, logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("rejects unknown encryption", func(t *testing.T) {
		_, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, SenderEmail: "shop@example.com", Encryption: "rot13"}, logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("ssl", func(t *testing.T) {
		s, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 465, SenderEmail: "shop@example.com", Encryption: "SSL"}, logger.NewNop())
		require.NoError(t, err)
		sender := s.(*smtpSender)
		assert.True(t, sender.dialer.SSL)
		assert.Equal(t, "smtp.example.com", sender.dialer.TLSConfig.ServerName)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Run("text and html", func(t *testing.T) {
		m, err := buildMessage("shop@example.com", []string{"buyer@example.com"}, "Your order", "<p>hi</p>", "hi")
		require.NoError(t, err)

		var buf bytes.Buffer
		_, err = m.WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Subject: Your order")
		assert.Contains(t, buf.String(), "text/plain")
		assert.Contains(t, buf.String(), "text/html")
	})

	t.Run("no recipients", func(t *testing.T) {
		_, err := buildMessage("shop@example.com", nil, "s", "", "body")
		assert.Error(t, err)
	})

	t.Run("no body", func(t *testing.T) {
		_, err := buildMessage("shop@example.com", []string{"a@b.co"}, "s", "", "")
		assert.Error(t, err)
	})
}
