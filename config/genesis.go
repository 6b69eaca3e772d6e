package config

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/ledger"
)

// GenesisConfig funds accounts of a fresh database. Accounts from the file
// and from the config are merged, the config wins for an account present in both.
type GenesisConfig struct {
	Accounts map[string]uint64 `mapstructure:"accounts"`
	// File is a path to a genesis json document.
	File string `mapstructure:"file"`
}

// DefaultGenesisConfig has no funded accounts.
func DefaultGenesisConfig() GenesisConfig {
	return GenesisConfig{Accounts: map[string]uint64{}}
}

// Balances parses configured accounts. Must be called after network hrp is set.
func (g *GenesisConfig) Balances() (map[types.Address]types.Amount, error) {
	genesis := ledger.Genesis{Accounts: g.Accounts}
	return genesis.Parse()
}

// Validate checks that accounts are parseable and that total supply doesn't overflow.
func (g *GenesisConfig) Validate() error {
	balances, err := g.Balances()
	if err != nil {
		return err
	}
	var total types.Amount
	for address, balance := range balances {
		if balance == 0 {
			return fmt.Errorf("genesis account %s has zero balance", address)
		}
		if total, err = total.Add(balance); err != nil {
			return errors.Join(errors.New("genesis supply overflows"), err)
		}
	}
	return nil
}
