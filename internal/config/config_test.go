package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const sampleConfig = `
timezone: UTC
generator_timeout: 5s
default_client: naturnd
default_sender: smorris
sender_profiles:
  smorris:
    invoice_from: "Samuel Morris\nsam@example.com"
    invoice_logo_url: https://example.com/logo.png
    terms: Payment due within 15 days.
clients:
  naturnd:
    invoice_to: NatuRnD Inc.
    save_folder: /tmp/invoices/naturnd
    due_date_days: 15
    hourly_rate: 33
  roygroup:
    invoice_to: Roy Group
    save_folder: /tmp/invoices/roygroup
    due_date_days: 30
    sheet: roy_hours.xlsx
`

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "https://invoice-generator.com", cfg.GeneratorURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, MalformedStrict, cfg.OnMalformed)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestClientLookup(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	client, err := cfg.Client("roygroup")
	require.NoError(t, err)
	assert.Equal(t, "roygroup", client.Name)
	assert.Equal(t, "Roy Group", client.InvoiceTo)
	assert.Equal(t, 30, client.DueDateDays)
	assert.Equal(t, "roy_hours.xlsx", client.Sheet)

	// Empty name falls back to default_client.
	client, err = cfg.Client("")
	require.NoError(t, err)
	assert.Equal(t, "naturnd", client.Name)

	_, err = cfg.Client("nobody")
	require.ErrorIs(t, err, ErrUnknownClient)
	assert.Contains(t, err.Error(), "nobody")
}

func TestSenderLookup(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	sender, err := cfg.Sender("")
	require.NoError(t, err)
	assert.Equal(t, "smorris", sender.Name)
	assert.Equal(t, "Payment due within 15 days.", sender.Terms)

	_, err = cfg.Sender("ghost")
	require.ErrorIs(t, err, ErrUnknownSenderProfile)
}

func TestSingleEntryFallback(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
timezone: UTC
sender_profiles:
  solo:
    invoice_from: Solo Sender
clients:
  onlyclient:
    invoice_to: Only Client
    save_folder: /tmp/invoices
    due_date_days: 10
`))
	require.NoError(t, err)

	client, err := cfg.Client("")
	require.NoError(t, err)
	assert.Equal(t, "onlyclient", client.Name)

	sender, err := cfg.Sender("")
	require.NoError(t, err)
	assert.Equal(t, "solo", sender.Name)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative due date offset", `
clients:
  bad:
    invoice_to: Bad
    due_date_days: -1
`},
		{"unknown timezone", "timezone: Mars/Olympus_Mons\n"},
		{"unparsable timeout", "generator_timeout: soon\n"},
		{"unknown malformed policy", "on_malformed: shrug\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
