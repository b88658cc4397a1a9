package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/GlebRadaev/bankledger/internal/service/ledgerservice"
)

type Config struct {
	Address              string          `env:"RUN_ADDRESS"             envDefault:"localhost:8080"`
	LogLvl               string          `env:"LOG_LVL"                 envDefault:"info"`
	LogOutput            string          `env:"LOG_OUTPUT"              envDefault:"stderr"`
	Agency               string          `env:"BANK_AGENCY"             envDefault:"0001"`
	WithdrawalLimit      decimal.Decimal `env:"WITHDRAWAL_LIMIT"        envDefault:"500"`
	MaxWithdrawals       int             `env:"MAX_WITHDRAWALS"         envDefault:"3"`
	ExitOnInvalidDeposit bool            `env:"EXIT_ON_INVALID_DEPOSIT" envDefault:"false"`
}

// New reads the configuration from the environment. Command-line flags bound
// with BindFlags take precedence once parsed.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("can't parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Address, "address", "a", c.Address, "address and port to run server")
	fs.StringVarP(&c.LogLvl, "log-level", "l", c.LogLvl, "log level")
	fs.StringVar(&c.LogOutput, "log-output", c.LogOutput, "log output path (stdout, stderr or a file)")
	fs.StringVar(&c.Agency, "agency", c.Agency, "agency code assigned to every account")
	fs.Var(decimalValue{&c.WithdrawalLimit}, "withdrawal-limit", "maximum amount of a single withdrawal")
	fs.IntVar(&c.MaxWithdrawals, "max-withdrawals", c.MaxWithdrawals, "maximum number of withdrawals per account")
	fs.BoolVar(&c.ExitOnInvalidDeposit, "exit-on-invalid-deposit", c.ExitOnInvalidDeposit, "end the shell session when a deposit amount is rejected")
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.Agency == "" {
		return errors.New("agency must not be empty")
	}
	if !c.WithdrawalLimit.IsPositive() {
		return fmt.Errorf("withdrawal limit must be positive: %s", c.WithdrawalLimit)
	}
	if c.MaxWithdrawals < 1 {
		return fmt.Errorf("max withdrawals must be positive: %d", c.MaxWithdrawals)
	}
	return nil
}

func (c *Config) Policy() ledgerservice.Policy {
	return ledgerservice.Policy{
		Agency:          c.Agency,
		WithdrawalLimit: c.WithdrawalLimit,
		MaxWithdrawals:  c.MaxWithdrawals,
	}
}

type decimalValue struct {
	d *decimal.Decimal
}

func (v decimalValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v decimalValue) Type() string {
	return "decimal"
}
