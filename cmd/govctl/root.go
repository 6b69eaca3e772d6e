package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/config"
	"github.com/spacemeshos/go-democracy/config/presets"
	"github.com/spacemeshos/go-democracy/democracy"
	"github.com/spacemeshos/go-democracy/enactment"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/filesystem"
	"github.com/spacemeshos/go-democracy/ledger"
	"github.com/spacemeshos/go-democracy/log"
	"github.com/spacemeshos/go-democracy/node"
	"github.com/spacemeshos/go-democracy/sql"
)

// env holds services opened for a single command.
type env struct {
	conf       config.Config
	preset     string
	configPath string
	dataDir    string
	dbPath     string
	logLevel   string

	logger      *zap.Logger
	db          *sql.Database
	ledger      *ledger.Ledger
	engine      *democracy.Engine
	events      <-chan events.Event
	unsubscribe func()
}

func (e *env) open(c *cobra.Command) error {
	if err := node.LoadConfig(&e.conf, e.preset, e.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if e.dataDir != "" {
		e.conf.DataDirParent = e.dataDir
	}
	path := e.dbPath
	if path == "" {
		if _, err := filesystem.GetFullDirectoryPath(e.conf.DataDir()); err != nil {
			return err
		}
		path = e.conf.DatabasePath()
	} else {
		path = filesystem.GetCanonicalPath(path)
		if _, err := filesystem.GetFullDirectoryPath(filepath.Dir(path)); err != nil {
			return err
		}
	}
	types.SetNetworkHRP(e.conf.Address.NetworkHRP)

	lvl, err := log.ParseLevel(e.logLevel)
	if err != nil {
		return err
	}
	e.logger = log.NewWithWriter(c.ErrOrStderr(), "govctl", lvl)

	e.db, err = sql.Open("file:"+path,
		sql.WithConnections(e.conf.DatabaseConnections),
		sql.WithLogger(e.logger.Named(node.DatabaseLogger)),
	)
	if err != nil {
		return err
	}
	e.ledger = ledger.New(ledger.WithLogger(e.logger.Named(node.LedgerLogger)))
	reporter := events.NewReporter(events.WithLogger(e.logger.Named(node.EventsLogger)))
	e.events, e.unsubscribe = reporter.Subscribe(1024)
	e.engine, err = democracy.New(e.db, e.ledger,
		enactment.New(e.ledger, enactment.WithLogger(e.logger.Named(node.EnactmentLogger))),
		democracy.WithLogger(e.logger.Named(node.EngineLogger)),
		democracy.WithConfig(e.conf.Democracy),
		democracy.WithPublisher(reporter),
	)
	if err != nil {
		return errors.Join(err, e.db.Close())
	}
	return nil
}

// close prints events emitted by the command and closes the database.
// Events are written apart from the command output, which stays valid json.
func (e *env) close(w io.Writer) error {
	if e.db == nil {
		return nil
	}
	e.unsubscribe()
	for ev := range e.events {
		if err := printEvent(w, ev); err != nil {
			return errors.Join(err, e.db.Close())
		}
	}
	return e.db.Close()
}

func printEvent(w io.Writer, ev events.Event) error {
	enc := zapcore.NewMapObjectEncoder()
	if err := ev.MarshalLogObject(enc); err != nil {
		return err
	}
	data, err := json.Marshal(enc.Fields)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event %s %s\n", ev.Name(), data)
	return err
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func rootCommand() *cobra.Command {
	e := &env{conf: config.MainnetConfig()}
	root := &cobra.Command{
		Use:           "govctl",
		Short:         "operate the governance engine on a node database",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return e.open(c)
		},
		PersistentPostRunE: func(c *cobra.Command, args []string) error {
			return e.close(c.ErrOrStderr())
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&e.preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	flags.StringVarP(&e.configPath, "config", "c", "", "load configuration from file")
	flags.StringVarP(&e.dataDir, "data-folder", "d", "", "data directory of the node")
	flags.StringVar(&e.dbPath, "db", "", "path to the database, overrides the data directory")
	flags.StringVar(&e.logLevel, "log-level", "warn", "level of diagnostic logs written to stderr")

	root.AddCommand(
		genesisCommand(e),
		tickCommand(e),
		proposeCommand(e),
		secondCommand(e),
		voteCommand(e),
		proxyVoteCommand(e),
		delegateCommand(e),
		undelegateCommand(e),
		setProxyCommand(e),
		resignProxyCommand(e),
		clearProxyCommand(e),
		injectCommand(e),
		cancelCommand(e),
		cancelQueuedCommand(e),
		ballotsCommand(e),
		proposalsCommand(e),
		tallyCommand(e),
		votersCommand(e),
		delegationsCommand(e),
		queuedCommand(e),
		balanceCommand(e),
		exportCommand(e),
		vacuumCommand(e),
	)
	return root
}
