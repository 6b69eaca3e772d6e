package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-democracy/codec"
)

func TestProposal_Codec(t *testing.T) {
	p := Proposal{Kind: 2, Body: []byte("set max strength")}
	buf, err := codec.Encode(&p)
	require.NoError(t, err)

	var decoded Proposal
	require.NoError(t, codec.Decode(buf, &decoded))
	require.Equal(t, p, decoded)
	require.Equal(t, p.Hash(), decoded.Hash())

	other := Proposal{Kind: 3, Body: p.Body}
	require.NotEqual(t, p.Hash(), other.Hash())
}

func TestProposal_BodyLimit(t *testing.T) {
	p := Proposal{Kind: 1, Body: make([]byte, MaxProposalBody+1)}
	_, err := codec.Encode(&p)
	require.Error(t, err)
}

func TestPublicProposal_Backing(t *testing.T) {
	a := GenerateAddress([]byte{1})
	p := PublicProposal{Deposit: 10, Depositors: []Address{a, a, a}}
	backing, err := p.Backing()
	require.NoError(t, err)
	require.Equal(t, Amount(30), backing)
}
