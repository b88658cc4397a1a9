package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetEnv unsets every config variable for the duration of the test.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RUN_ADDRESS", "LOG_LVL", "LOG_OUTPUT", "BANK_AGENCY",
		"WITHDRAWAL_LIMIT", "MAX_WITHDRAWALS", "EXIT_ON_INVALID_DEPOSIT",
	} {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func setEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "localhost:9000")
	t.Setenv("LOG_LVL", "debug")
	t.Setenv("BANK_AGENCY", "0002")
	t.Setenv("WITHDRAWAL_LIMIT", "750.50")
	t.Setenv("MAX_WITHDRAWALS", "5")
}

func TestNew_Defaults(t *testing.T) {
	resetEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, "info", cfg.LogLvl)
	assert.Equal(t, "stderr", cfg.LogOutput)
	assert.Equal(t, "0001", cfg.Agency)
	assert.Equal(t, "500", cfg.WithdrawalLimit.String())
	assert.Equal(t, 3, cfg.MaxWithdrawals)
	assert.False(t, cfg.ExitOnInvalidDeposit)
}

func TestNew_Env(t *testing.T) {
	resetEnv(t)
	setEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLvl)
	assert.Equal(t, "0002", cfg.Agency)
	assert.Equal(t, "750.5", cfg.WithdrawalLimit.String())
	assert.Equal(t, 5, cfg.MaxWithdrawals)
}

func TestNew_InvalidEnv(t *testing.T) {
	resetEnv(t)
	t.Setenv("MAX_WITHDRAWALS", "three")

	_, err := New()
	assert.Error(t, err)
}

func TestBindFlags_OverrideEnv(t *testing.T) {
	resetEnv(t)
	setEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	err = fs.Parse([]string{
		"-a", "localhost:8081",
		"-l", "error",
		"--withdrawal-limit", "1000",
		"--max-withdrawals", "10",
		"--exit-on-invalid-deposit",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Address)
	assert.Equal(t, "error", cfg.LogLvl)
	assert.Equal(t, "0002", cfg.Agency, "unset flag keeps env value")
	assert.Equal(t, "1000", cfg.WithdrawalLimit.String())
	assert.Equal(t, 10, cfg.MaxWithdrawals)
	assert.True(t, cfg.ExitOnInvalidDeposit)
}

func TestBindFlags_InvalidDecimal(t *testing.T) {
	resetEnv(t)
	cfg, err := New()
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	err = fs.Parse([]string{"--withdrawal-limit", "lots"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	resetEnv(t)

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{name: "Defaults are valid", mutate: func(c *Config) {}},
		{name: "Empty agency", mutate: func(c *Config) { c.Agency = "" }, expectErr: true},
		{name: "Empty address", mutate: func(c *Config) { c.Address = "" }, expectErr: true},
		{name: "Negative max withdrawals", mutate: func(c *Config) { c.MaxWithdrawals = -1 }, expectErr: true},
		{name: "Zero max withdrawals", mutate: func(c *Config) { c.MaxWithdrawals = 0 }, expectErr: true},
		{name: "Negative limit", mutate: func(c *Config) {
			_ = decimalValue{&c.WithdrawalLimit}.Set("-1")
		}, expectErr: true},
		{name: "Zero limit", mutate: func(c *Config) { c.WithdrawalLimit = decimal.Zero }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New()
			require.NoError(t, err)
			tt.mutate(cfg)
			if tt.expectErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestPolicy(t *testing.T) {
	resetEnv(t)
	cfg, err := New()
	require.NoError(t, err)

	policy := cfg.Policy()
	assert.Equal(t, "0001", policy.Agency)
	assert.Equal(t, 3, policy.MaxWithdrawals)
	assert.True(t, policy.WithdrawalLimit.Equal(cfg.WithdrawalLimit))
}

func TestNew_UnsetEnvUsesDefaults(t *testing.T) {
	resetEnv(t)
	t.Setenv("BANK_AGENCY", "0009")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "0009", cfg.Agency)
	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, 3, cfg.MaxWithdrawals)
	assert.NoError(t, cfg.Validate())
}
