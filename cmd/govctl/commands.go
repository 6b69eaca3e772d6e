package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/enactment"
	"github.com/spacemeshos/go-democracy/sql"
)

func parseAddress(name, value string) (types.Address, error) {
	if value == "" {
		return types.Address{}, fmt.Errorf("%s is required", name)
	}
	addr, err := types.StringToAddress(value)
	if err != nil {
		return types.Address{}, fmt.Errorf("%s: %w", name, err)
	}
	return addr, nil
}

func parseUint32(name, value string) (uint32, error) {
	rst, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return uint32(rst), nil
}

func parseStrength(value string) (uint8, error) {
	rst, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("strength: %w", err)
	}
	return uint8(rst), nil
}

// parseProposal parses `remark <text>`, `set-parameter <key> <value>`
// and `transfer <from> <to> <amount>`.
func parseProposal(args []string) (types.Proposal, error) {
	if len(args) == 0 {
		return types.Proposal{}, errors.New("proposal kind is required")
	}
	kind, args := args[0], args[1:]
	switch kind {
	case "remark":
		if len(args) != 1 {
			return types.Proposal{}, errors.New("remark expects <text>")
		}
		return enactment.RemarkProposal([]byte(args[0])), nil
	case "set-parameter":
		if len(args) != 2 {
			return types.Proposal{}, errors.New("set-parameter expects <key> <value>")
		}
		return enactment.SetParameterProposal(args[0], []byte(args[1]))
	case "transfer":
		if len(args) != 3 {
			return types.Proposal{}, errors.New("transfer expects <from> <to> <amount>")
		}
		from, err := parseAddress("from", args[0])
		if err != nil {
			return types.Proposal{}, err
		}
		to, err := parseAddress("to", args[1])
		if err != nil {
			return types.Proposal{}, err
		}
		amount, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return types.Proposal{}, fmt.Errorf("amount: %w", err)
		}
		return enactment.TransferProposal(from, to, types.Amount(amount)), nil
	}
	return types.Proposal{}, fmt.Errorf("unknown proposal kind %q", kind)
}

func genesisCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "genesis <file>",
		Short: "fund accounts of a fresh database from a genesis json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			issuance, err := e.ledger.TotalIssuance(e.db)
			if err != nil {
				return err
			}
			if issuance != 0 {
				return fmt.Errorf("database is already funded with %d", issuance)
			}
			return e.db.WithTx(c.Context(), func(tx *sql.Tx) error {
				return e.ledger.LoadGenesisFile(tx, afero.NewOsFs(), args[0])
			})
		},
	}
}

func tickCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tick <height>",
		Short: "process a height",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			height, err := parseUint32("height", args[0])
			if err != nil {
				return err
			}
			return e.engine.OnTick(c.Context(), types.Height(height))
		},
	}
}

func proposeCommand(e *env) *cobra.Command {
	var (
		from    string
		deposit uint64
	)
	c := &cobra.Command{
		Use:   "propose <kind> [args...]",
		Short: "submit a public proposal",
		Long: `Kinds:
  remark <text>
  set-parameter <key> <value>
  transfer <from> <to> <amount>`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			who, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			proposal, err := parseProposal(args)
			if err != nil {
				return err
			}
			index, err := e.engine.Propose(c.Context(), who, proposal, types.Amount(deposit))
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), map[string]uint32{"index": index})
		},
	}
	c.Flags().StringVar(&from, "from", "", "proposer account")
	c.Flags().Uint64Var(&deposit, "deposit", 0, "deposit reserved from the proposer")
	return c
}

func secondCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "second <index>",
		Short: "back a public proposal with the same deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			who, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			index, err := parseUint32("index", args[0])
			if err != nil {
				return err
			}
			return e.engine.Second(c.Context(), who, index)
		},
	}
	c.Flags().StringVar(&from, "from", "", "seconding account")
	return c
}

func parseVote(args []string) (types.BallotID, types.Vote, error) {
	ballot, err := parseUint32("ballot", args[0])
	if err != nil {
		return 0, types.Vote{}, err
	}
	direction, err := types.ParseDirection(args[1])
	if err != nil {
		return 0, types.Vote{}, err
	}
	strength, err := parseStrength(args[2])
	if err != nil {
		return 0, types.Vote{}, err
	}
	return types.BallotID(ballot), types.Vote{Direction: direction, Strength: strength}, nil
}

func voteCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "vote <ballot> <approve|reject> <strength>",
		Short: "vote on an active ballot",
		Args:  cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			who, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			ballot, vote, err := parseVote(args)
			if err != nil {
				return err
			}
			return e.engine.Vote(c.Context(), who, ballot, vote)
		},
	}
	c.Flags().StringVar(&from, "from", "", "voting account")
	return c
}

func proxyVoteCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "proxy-vote <ballot> <approve|reject> <strength>",
		Short: "vote on behalf of the stash account",
		Args:  cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			proxy, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			ballot, vote, err := parseVote(args)
			if err != nil {
				return err
			}
			return e.engine.ProxyVote(c.Context(), proxy, ballot, vote)
		},
	}
	c.Flags().StringVar(&from, "from", "", "proxy account")
	return c
}

func delegateCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "delegate <to> <max-strength>",
		Short: "delegate voting power",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			who, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			to, err := parseAddress("to", args[0])
			if err != nil {
				return err
			}
			strength, err := parseStrength(args[1])
			if err != nil {
				return err
			}
			return e.engine.Delegate(c.Context(), who, to, strength)
		},
	}
	c.Flags().StringVar(&from, "from", "", "delegating account")
	return c
}

func undelegateCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "undelegate",
		Short: "remove the outgoing delegation",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			who, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			return e.engine.Undelegate(c.Context(), who)
		},
	}
	c.Flags().StringVar(&from, "from", "", "delegating account")
	return c
}

func setProxyCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "set-proxy <proxy>",
		Short: "allow the proxy to vote for the stash account",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			stash, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			proxy, err := parseAddress("proxy", args[0])
			if err != nil {
				return err
			}
			return e.engine.SetProxy(c.Context(), stash, proxy)
		},
	}
	c.Flags().StringVar(&from, "from", "", "stash account")
	return c
}

func resignProxyCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "resign-proxy",
		Short: "stop acting as a proxy",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			proxy, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			return e.engine.ResignProxy(c.Context(), proxy)
		},
	}
	c.Flags().StringVar(&from, "from", "", "proxy account")
	return c
}

func clearProxyCommand(e *env) *cobra.Command {
	var from string
	c := &cobra.Command{
		Use:   "clear-proxy <proxy>",
		Short: "remove the proxy of the stash account",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			stash, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			proxy, err := parseAddress("proxy", args[0])
			if err != nil {
				return err
			}
			return e.engine.ClearProxy(c.Context(), stash, proxy)
		},
	}
	c.Flags().StringVar(&from, "from", "", "stash account")
	return c
}

func injectCommand(e *env) *cobra.Command {
	var delay uint32
	c := &cobra.Command{
		Use:   "inject <end> <threshold> <kind> [args...]",
		Short: "start a ballot directly",
		Long: `Thresholds: super-majority-approve, super-majority-against, simple-majority.
Kinds are the same as for propose.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			end, err := parseUint32("end", args[0])
			if err != nil {
				return err
			}
			threshold, err := types.ParseThreshold(args[1])
			if err != nil {
				return err
			}
			proposal, err := parseProposal(args[2:])
			if err != nil {
				return err
			}
			id, err := e.engine.InjectBallot(c.Context(), types.Height(end), proposal, threshold, delay)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), map[string]types.BallotID{"ballot": id})
		},
	}
	c.Flags().Uint32Var(&delay, "delay", 0, "heights between passing and enactment")
	return c
}

func cancelCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <ballot>",
		Short: "cancel an active ballot",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseUint32("ballot", args[0])
			if err != nil {
				return err
			}
			return e.engine.CancelBallot(c.Context(), types.BallotID(id))
		},
	}
}

func cancelQueuedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-queued <when> <position>",
		Short: "remove a scheduled enactment",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			when, err := parseUint32("when", args[0])
			if err != nil {
				return err
			}
			position, err := parseUint32("position", args[1])
			if err != nil {
				return err
			}
			return e.engine.CancelQueued(c.Context(), types.Height(when), position)
		},
	}
}

func ballotsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ballots",
		Short: "list active ballots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ballots, err := e.engine.ActiveBallots()
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), ballots)
		},
	}
}

func proposalsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "proposals",
		Short: "list public proposals",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			proposals, err := e.engine.PublicProposals()
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), proposals)
		},
	}
}

func tallyCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tally <ballot>",
		Short: "preview the tally of an active ballot",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseUint32("ballot", args[0])
			if err != nil {
				return err
			}
			preview, err := e.engine.TallyPreview(types.BallotID(id))
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), preview)
		},
	}
}

func votersCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "voters <ballot>",
		Short: "list direct votes on an active ballot",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseUint32("ballot", args[0])
			if err != nil {
				return err
			}
			voters, err := e.engine.VotersFor(types.BallotID(id))
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), voters)
		},
	}
}

func delegationsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delegations",
		Short: "list delegations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			delegations, err := e.engine.Delegations()
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), delegations)
		},
	}
}

func queuedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "queued",
		Short: "list scheduled enactments",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			queued, err := e.engine.Queued()
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), queued)
		},
	}
}

func balanceCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account>",
		Short: "show balance, reserved amount and lock of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			addr, err := parseAddress("account", args[0])
			if err != nil {
				return err
			}
			account, err := e.ledger.Account(e.db, addr)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), account)
		},
	}
}

func vacuumCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "vacuum",
		Short: "reclaim space left by baked ballots and cleared votes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return sql.Vacuum(e.db)
		},
	}
}
