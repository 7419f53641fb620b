package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kotsioskl2/vehicle-market/internal/config"
)

func TestNew(t *testing.T) {
	m := New(&config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@example.com",
		Password: "secret",
	})

	assert.Equal(t, "noreply@example.com", m.from)
	assert.Equal(t, "smtp.example.com", m.dialer.Host)
	assert.Equal(t, 587, m.dialer.Port)
}
