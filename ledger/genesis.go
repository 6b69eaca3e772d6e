package ledger

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

const schemaFile = "genesis.schema.json"

//go:embed genesis.schema.json
var schema string

// Genesis is the initial distribution of balances.
type Genesis struct {
	Accounts map[string]uint64 `json:"accounts"`
}

// Parse addresses of the genesis accounts.
func (g *Genesis) Parse() (map[types.Address]types.Amount, error) {
	rst := make(map[types.Address]types.Amount, len(g.Accounts))
	for encoded, amount := range g.Accounts {
		addr, err := types.StringToAddress(encoded)
		if err != nil {
			return nil, fmt.Errorf("genesis account %s: %w", encoded, err)
		}
		rst[addr] = types.Amount(amount)
	}
	return rst, nil
}

// ValidateGenesis checks data against the genesis json schema.
func ValidateGenesis(data []byte) error {
	sch, err := jsonschema.CompileString(schemaFile, schema)
	if err != nil {
		return fmt.Errorf("compile genesis json schema: %w", err)
	}
	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal genesis data: %w", err)
	}
	if err = sch.Validate(v); err != nil {
		return fmt.Errorf("validate genesis data: %w", err)
	}
	return nil
}

// ReadGenesis reads and validates genesis file.
func ReadGenesis(fs afero.Fs, path string) (*Genesis, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read genesis %s: %w", path, err)
	}
	if err := ValidateGenesis(data); err != nil {
		return nil, err
	}
	var genesis Genesis
	if err := json.Unmarshal(data, &genesis); err != nil {
		return nil, fmt.Errorf("decode genesis %s: %w", path, err)
	}
	return &genesis, nil
}

// LoadGenesis credits every genesis account.
func (l *Ledger) LoadGenesis(db sql.Executor, balances map[types.Address]types.Amount) error {
	addresses := slices.SortedFunc(maps.Keys(balances), func(a, b types.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, addr := range addresses {
		if err := l.Credit(db, addr, balances[addr]); err != nil {
			return fmt.Errorf("genesis: %w", err)
		}
	}
	total, err := l.TotalIssuance(db)
	if err != nil {
		return err
	}
	l.logger.Info("loaded genesis",
		zap.Int("accounts", len(addresses)),
		zap.Uint64("issuance", uint64(total)),
	)
	return nil
}

// LoadGenesisFile reads, validates and loads the genesis file.
func (l *Ledger) LoadGenesisFile(db sql.Executor, fs afero.Fs, path string) error {
	genesis, err := ReadGenesis(fs, path)
	if err != nil {
		return err
	}
	balances, err := genesis.Parse()
	if err != nil {
		return err
	}
	return l.LoadGenesis(db, balances)
}
