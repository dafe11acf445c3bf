package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.Database.URL)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Biometric.MaxFailures)
	assert.Equal(t, 15*time.Minute, cfg.Biometric.LockoutWindow)
	assert.Equal(t, 5*time.Second, cfg.Ledger.TxTimeout)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"CAMPUSVOTE_ADDR":        ":9090",
		"KAFKA_BROKERS":          "k1:9092, k2:9092,",
		"BIOMETRIC_TIMEOUT":      "10s",
		"BIOMETRIC_MAX_FAILURES": "3",
		"LOG_FORMAT":             "text",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Second, cfg.Biometric.Timeout)
	assert.Equal(t, 3, cfg.Biometric.MaxFailures)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestFromLookup_InvalidValues(t *testing.T) {
	_, err := fromLookup(lookupFrom(map[string]string{"BIOMETRIC_TIMEOUT": "soon"}))
	assert.ErrorContains(t, err, "BIOMETRIC_TIMEOUT")

	_, err = fromLookup(lookupFrom(map[string]string{"BIOMETRIC_MAX_FAILURES": "0"}))
	assert.Error(t, err)
}

func TestFromLookup_ProductionRequiresSigningKey(t *testing.T) {
	_, err := fromLookup(lookupFrom(map[string]string{"CAMPUSVOTE_ENV": "production"}))
	assert.ErrorContains(t, err, "JWT_SIGNING_KEY")

	cfg, err := fromLookup(lookupFrom(map[string]string{
		"CAMPUSVOTE_ENV":  "production",
		"JWT_SIGNING_KEY": "real-key",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
}
