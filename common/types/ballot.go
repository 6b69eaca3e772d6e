package types

import (
	"strconv"

	"go.uber.org/zap/zapcore"
)

// BallotID is a sequential ballot index.
type BallotID uint32

func (id BallotID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Ballot is a proposal under a time-boxed vote.
type Ballot struct {
	ID        BallotID
	End       Height
	Proposal  Proposal
	Threshold VoteThreshold
	// Delay between passing the ballot and enacting the proposal.
	Delay uint32
}

// MarshalLogObject implements logging interface.
func (b *Ballot) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("id", uint32(b.ID))
	encoder.AddUint32("end", b.End.Uint32())
	encoder.AddString("threshold", b.Threshold.String())
	encoder.AddUint32("delay", b.Delay)
	return encoder.AddObject("proposal", &b.Proposal)
}

// PublicProposal is a proposal waiting to be tabled, backed by deposits.
type PublicProposal struct {
	Index    uint32
	Proposal Proposal
	Proposer Address
	Deposit  Amount
	// Depositors in order of deposit, the proposer first. An account may appear multiple times.
	Depositors []Address
}

// Backing is the deposit multiplied by the number of deposits.
func (p *PublicProposal) Backing() (Amount, error) {
	return p.Deposit.Mul(uint64(len(p.Depositors)))
}

// MarshalLogObject implements logging interface.
func (p *PublicProposal) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("index", p.Index)
	encoder.AddString("proposer", p.Proposer.String())
	encoder.AddUint64("deposit", uint64(p.Deposit))
	encoder.AddInt("depositors", len(p.Depositors))
	return encoder.AddObject("proposal", &p.Proposal)
}

// Enactment is a passed proposal waiting in the dispatch queue.
type Enactment struct {
	When     Height
	Position uint32
	Ballot   BallotID
	Proposal Proposal
}
