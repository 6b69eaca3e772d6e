package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/enactment"
)

// snapshot is the exported governance state.
type snapshot struct {
	LastTick    *types.Height          `json:"last_tick,omitempty"`
	Issuance    types.Amount           `json:"issuance"`
	Ballots     []types.Ballot         `json:"ballots"`
	Proposals   []types.PublicProposal `json:"proposals"`
	Delegations []types.Delegation     `json:"delegations"`
	Queued      []types.Enactment      `json:"queued"`
	Parameters  map[string][]byte      `json:"parameters"`
}

func (e *env) snapshot() (*snapshot, error) {
	var (
		rst snapshot
		err error
	)
	height, processed, err := e.engine.LastTick()
	if err != nil {
		return nil, err
	}
	if processed {
		rst.LastTick = &height
	}
	if rst.Issuance, err = e.ledger.TotalIssuance(e.db); err != nil {
		return nil, err
	}
	if rst.Ballots, err = e.engine.ActiveBallots(); err != nil {
		return nil, err
	}
	if rst.Proposals, err = e.engine.PublicProposals(); err != nil {
		return nil, err
	}
	if rst.Delegations, err = e.engine.Delegations(); err != nil {
		return nil, err
	}
	if rst.Queued, err = e.engine.Queued(); err != nil {
		return nil, err
	}
	if rst.Parameters, err = enactment.Parameters(e.db); err != nil {
		return nil, err
	}
	return &rst, nil
}

func exportCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "write governance state to a json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			snap, err := e.snapshot()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			if err := atomic.WriteFile(args[0], bytes.NewReader(data)); err != nil {
				return fmt.Errorf("write snapshot %s: %w", args[0], err)
			}
			return nil
		},
	}
}
