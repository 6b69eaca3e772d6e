package enactment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/ledger"
	"github.com/spacemeshos/go-democracy/sql"
)

func TestRemark(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := New(ledger.New(), WithLogger(zap.New(core)))
	require.NoError(t, d.Enact(context.Background(), sql.InMemory(), 7, RemarkProposal([]byte("hello"))))
	require.Equal(t, 1, logs.FilterMessage("remark enacted").Len())
}

func TestSetParameter(t *testing.T) {
	db := sql.InMemory()
	d := New(ledger.New())

	p, err := SetParameterProposal("voting-period", []byte{1, 2})
	require.NoError(t, err)
	require.NoError(t, d.Enact(context.Background(), db, 1, p))
	value, err := Parameter(db, "voting-period")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, value)

	p, err = SetParameterProposal("", []byte{1})
	require.NoError(t, err)
	require.Error(t, d.Enact(context.Background(), db, 1, p))

	_, err = SetParameterProposal(strings.Repeat("k", maxKeyLength+1), nil)
	require.Error(t, err)

	params, err := Parameters(db)
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{"voting-period": {1, 2}}, params)

	require.Error(t, d.Enact(context.Background(), db, 1, types.Proposal{Kind: KindSetParameter, Body: []byte{0xff}}))
}

func TestTransfer(t *testing.T) {
	db := sql.InMemory()
	l := ledger.New()
	d := New(l)
	treasury, alice := types.GenerateAddress([]byte{1}), types.GenerateAddress([]byte{2})
	require.NoError(t, l.Credit(db, treasury, 100))

	require.NoError(t, d.Enact(context.Background(), db, 1, TransferProposal(treasury, alice, 40)))
	stake, err := l.Stake(db, alice)
	require.NoError(t, err)
	require.Equal(t, types.Amount(40), stake)

	err = d.Enact(context.Background(), db, 1, TransferProposal(treasury, alice, 100))
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
}

func TestUnknownKind(t *testing.T) {
	d := New(ledger.New())
	err := d.Enact(context.Background(), sql.InMemory(), 1, types.Proposal{Kind: 99})
	require.ErrorIs(t, err, ErrUnknownKind)

	fail := errors.New("custom")
	d.Register(99, func(context.Context, sql.Executor, types.Height, []byte) error { return fail })
	err = d.Enact(context.Background(), sql.InMemory(), 1, types.Proposal{Kind: 99})
	require.ErrorIs(t, err, fail)
}
