package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run("not configured client skips sending", func(t *testing.T) {
		client := impl{}
		require.False(t, client.IsConfigured())
		require.Nil(t, client.SendEMail("sales@example.com", "body", "subject"))
	})
	t.Run("message headers", func(t *testing.T) {
		msg := buildMessage("robot@example.com", "sales@example.com", "Nueva cotización", "linea 1\nlinea 2")
		require.True(t, strings.HasPrefix(msg, "From: robot@example.com\r\nTo: sales@example.com\r\n"))
		require.Contains(t, msg, "Subject: Cotizaciones - Nueva cotización\r\n")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\nlinea 1\r\nlinea 2\r\n"))
	})
}
