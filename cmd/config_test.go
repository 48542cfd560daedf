package cmd_test

import (
	"path/filepath"
	"testing"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	t.Run("should apply defaults without an env file", func(t *testing.T) {
		cfg, err := cmd.LoadConfig(missing)
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 90*24*time.Hour, cfg.AuditRetention)
		assert.Equal(t, 3, cfg.LedgerMaxAttempts)
		assert.False(t, cfg.DeferredPaymentEnabled)
	})

	t.Run("should build the deferred payment policy", func(t *testing.T) {
		terrace := kernel.NewUUID()
		t.Setenv("DEFERRED_PAYMENT_ENABLED", "true")
		t.Setenv("DEFERRED_DEFAULT_CEILING", "5000")
		t.Setenv("DEFERRED_CEILINGS", terrace.String()+":20000")

		cfg, err := cmd.LoadConfig(missing)
		require.NoError(t, err)
		policy, err := cfg.DeferredPaymentPolicy()
		require.NoError(t, err)

		assert.True(t, policy.Enabled)
		assert.Equal(t, kernel.Amount(20000), policy.CeilingFor(terrace))
		assert.Equal(t, kernel.Amount(5000), policy.CeilingFor(kernel.NewUUID()))
	})

	t.Run("should reject a ceiling keyed by something other than a uuid", func(t *testing.T) {
		t.Setenv("DEFERRED_CEILINGS", "terrace:20000")

		cfg, err := cmd.LoadConfig(missing)
		require.NoError(t, err)
		_, err = cfg.DeferredPaymentPolicy()
		require.Error(t, err)
	})

	t.Run("should reject a negative default ceiling", func(t *testing.T) {
		t.Setenv("DEFERRED_DEFAULT_CEILING", "-1")

		cfg, err := cmd.LoadConfig(missing)
		require.NoError(t, err)
		_, err = cfg.DeferredPaymentPolicy()
		require.Error(t, err)
	})

	t.Run("should fail on a malformed duration", func(t *testing.T) {
		t.Setenv("AUDIT_RETENTION", "forever")

		_, err := cmd.LoadConfig(missing)
		require.Error(t, err)
	})
}
