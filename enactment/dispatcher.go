// Package enactment executes proposals of passed ballots.
package enactment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/codec"
	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/hash"
	"github.com/spacemeshos/go-democracy/ledger"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/kvstore"
)

// Built-in proposal kinds.
const (
	KindRemark types.ProposalKind = iota + 1
	KindSetParameter
	KindTransfer
)

const parameterPrefix = "param/"

// ErrUnknownKind is returned for a proposal without a registered handler.
var ErrUnknownKind = errors.New("unknown proposal kind")

// Handler applies the proposal body. Changes must be written to db only.
type Handler func(ctx context.Context, db sql.Executor, now types.Height, body []byte) error

// Opt for configuring Dispatcher.
type Opt func(*Dispatcher)

// WithLogger sets logger for Dispatcher.
func WithLogger(logger *zap.Logger) Opt {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates dispatcher with built-in handlers registered.
func New(ledger *ledger.Ledger, opts ...Opt) *Dispatcher {
	d := &Dispatcher{
		logger:   zap.NewNop(),
		ledger:   ledger,
		handlers: map[types.ProposalKind]Handler{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Register(KindRemark, d.remark)
	d.Register(KindSetParameter, d.setParameter)
	d.Register(KindTransfer, d.transfer)
	return d
}

// Dispatcher routes proposals to handlers by kind.
type Dispatcher struct {
	logger   *zap.Logger
	ledger   *ledger.Ledger
	handlers map[types.ProposalKind]Handler
}

// Register overwrites handler for the kind. Not safe to call concurrently with Enact.
func (d *Dispatcher) Register(kind types.ProposalKind, handler Handler) {
	d.handlers[kind] = handler
}

// Enact the proposal at the height.
func (d *Dispatcher) Enact(ctx context.Context, db sql.Executor, now types.Height, proposal types.Proposal) error {
	handler, exists := d.handlers[proposal.Kind]
	label := strconv.Itoa(int(proposal.Kind))
	if !exists {
		enacted.WithLabelValues(label, "unknown").Inc()
		return fmt.Errorf("%w: %d", ErrUnknownKind, proposal.Kind)
	}
	if err := handler(ctx, db, now, proposal.Body); err != nil {
		enacted.WithLabelValues(label, "failed").Inc()
		return fmt.Errorf("enact kind %d: %w", proposal.Kind, err)
	}
	enacted.WithLabelValues(label, "ok").Inc()
	return nil
}

func (d *Dispatcher) remark(_ context.Context, _ sql.Executor, now types.Height, body []byte) error {
	d.logger.Info("remark enacted",
		zap.Uint32("height", now.Uint32()),
		zap.String("hash", types.Hash32(hash.Sum(body)).ShortString()),
		zap.Int("size", len(body)),
	)
	return nil
}

func (d *Dispatcher) setParameter(_ context.Context, db sql.Executor, now types.Height, body []byte) error {
	var call SetParameter
	if err := codec.Decode(body, &call); err != nil {
		return err
	}
	if call.Key == "" {
		return errors.New("empty parameter key")
	}
	if err := kvstore.Set(db, parameterPrefix+call.Key, call.Value); err != nil {
		return err
	}
	d.logger.Info("parameter updated",
		zap.Uint32("height", now.Uint32()),
		zap.String("key", call.Key),
		zap.Binary("value", call.Value),
	)
	return nil
}

func (d *Dispatcher) transfer(_ context.Context, db sql.Executor, now types.Height, body []byte) error {
	var call Transfer
	if err := codec.Decode(body, &call); err != nil {
		return err
	}
	return d.ledger.Transfer(db, now, call.From, call.To, call.Amount)
}

// Parameter returns value set by an enacted KindSetParameter proposal.
func Parameter(db sql.Executor, key string) ([]byte, error) {
	return kvstore.Get(db, parameterPrefix+key)
}

// Parameters returns all enacted parameters.
func Parameters(db sql.Executor) (map[string][]byte, error) {
	rst := map[string][]byte{}
	if err := kvstore.IteratePrefix(db, parameterPrefix, func(key string, value []byte) bool {
		rst[key[len(parameterPrefix):]] = value
		return true
	}); err != nil {
		return nil, err
	}
	return rst, nil
}

// RemarkProposal wraps the text into a proposal.
func RemarkProposal(text []byte) types.Proposal {
	return types.Proposal{Kind: KindRemark, Body: text}
}

// SetParameterProposal encodes the call into a proposal.
func SetParameterProposal(key string, value []byte) (types.Proposal, error) {
	body, err := codec.Encode(&SetParameter{Key: key, Value: value})
	if err != nil {
		return types.Proposal{}, err
	}
	return types.Proposal{Kind: KindSetParameter, Body: body}, nil
}

// TransferProposal encodes the call into a proposal.
func TransferProposal(from, to types.Address, amount types.Amount) types.Proposal {
	return types.Proposal{
		Kind: KindTransfer,
		Body: codec.MustEncode(&Transfer{From: from, To: to, Amount: amount}),
	}
}
