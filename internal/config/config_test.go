package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	p := writeConfig(t, `
http:
  addr: ":8080"
jwt:
  secret: "0123456789abcdef0123"
  expire_seconds: 3600
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":8080", c.HTTP.Addr)
	require.Equal(t, "customer_audit", c.Kafka.AuditTopic)
	require.Equal(t, 30, c.Cache.ListTTLSeconds)
	require.Equal(t, 60, c.Cache.InfoTTLSeconds)
	require.Equal(t, "jwt:jti:", c.Redis.JTIPrefix)
	require.False(t, c.OTel.Enable)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing addr", "jwt:\n  secret: \"0123456789abcdef0123\"\n  expire_seconds: 3600\n"},
		{"short secret", "http:\n  addr: \":8080\"\njwt:\n  secret: \"short\"\n  expire_seconds: 3600\n"},
		{"bad expire", "http:\n  addr: \":8080\"\njwt:\n  secret: \"0123456789abcdef0123\"\n  expire_seconds: 0\n"},
		{"otel endpoint required", "http:\n  addr: \":8080\"\njwt:\n  secret: \"0123456789abcdef0123\"\n  expire_seconds: 3600\notel:\n  enable: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}
