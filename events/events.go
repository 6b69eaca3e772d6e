// Package events defines notifications emitted by the governance engine.
package events

import (
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-democracy/common/types"
)

// Event is a notification emitted after a state change is committed.
type Event interface {
	zapcore.ObjectMarshaler
	Name() string
}

// Proposed is emitted when a public proposal is submitted.
type Proposed struct {
	Index    uint32
	Proposer types.Address
	Deposit  types.Amount
	Hash     types.Hash32
}

func (Proposed) Name() string { return "proposed" }

func (e Proposed) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("index", e.Index)
	encoder.AddString("proposer", e.Proposer.String())
	encoder.AddUint64("deposit", uint64(e.Deposit))
	encoder.AddString("hash", e.Hash.ShortString())
	return nil
}

// Seconded is emitted when an account backs a public proposal with a deposit.
type Seconded struct {
	Index uint32
	Who   types.Address
}

func (Seconded) Name() string { return "seconded" }

func (e Seconded) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("index", e.Index)
	encoder.AddString("who", e.Who.String())
	return nil
}

// Tabled is emitted when a public proposal becomes a ballot and deposits are returned.
type Tabled struct {
	Index      uint32
	Ballot     types.BallotID
	Deposit    types.Amount
	Depositors []types.Address
}

func (Tabled) Name() string { return "tabled" }

func (e Tabled) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("index", e.Index)
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddUint64("deposit", uint64(e.Deposit))
	return encoder.AddArray("depositors", types.AddressList(e.Depositors))
}

// Started is emitted when a ballot is injected.
type Started struct {
	Ballot    types.BallotID
	End       types.Height
	Threshold types.VoteThreshold
}

func (Started) Name() string { return "started" }

func (e Started) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddUint32("end", e.End.Uint32())
	encoder.AddString("threshold", e.Threshold.String())
	return nil
}

// Voted is emitted for every direct vote, including votes cast by a proxy.
type Voted struct {
	Ballot types.BallotID
	Voter  types.Address
	Vote   types.Vote
	// Proxy is empty unless the vote was cast by a proxy.
	Proxy types.Address
}

func (Voted) Name() string { return "voted" }

func (e Voted) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddString("voter", e.Voter.String())
	if !e.Proxy.IsEmpty() {
		encoder.AddString("proxy", e.Proxy.String())
	}
	return encoder.AddObject("vote", e.Vote)
}

// Passed is emitted when a ballot is approved.
type Passed struct {
	Ballot  types.BallotID
	Approve types.Amount
	Against types.Amount
	Turnout types.Amount
}

func (Passed) Name() string { return "passed" }

func (e Passed) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddUint64("approve", uint64(e.Approve))
	encoder.AddUint64("against", uint64(e.Against))
	encoder.AddUint64("turnout", uint64(e.Turnout))
	return nil
}

// NotPassed is emitted when a ballot is rejected.
type NotPassed struct {
	Ballot  types.BallotID
	Approve types.Amount
	Against types.Amount
	Turnout types.Amount
}

func (NotPassed) Name() string { return "not_passed" }

func (e NotPassed) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddUint64("approve", uint64(e.Approve))
	encoder.AddUint64("against", uint64(e.Against))
	encoder.AddUint64("turnout", uint64(e.Turnout))
	return nil
}

// Cancelled is emitted when a ballot is removed without a tally.
type Cancelled struct {
	Ballot types.BallotID
}

func (Cancelled) Name() string { return "cancelled" }

func (e Cancelled) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	return nil
}

// Scheduled is emitted when a passed proposal is queued for delayed enactment.
type Scheduled struct {
	Ballot   types.BallotID
	When     types.Height
	Position uint32
}

func (Scheduled) Name() string { return "scheduled" }

func (e Scheduled) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddUint32("when", e.When.Uint32())
	encoder.AddUint32("position", e.Position)
	return nil
}

// Executed is emitted after an enactment attempt.
type Executed struct {
	Ballot types.BallotID
	OK     bool
	Error  string
}

func (Executed) Name() string { return "executed" }

func (e Executed) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint32("ballot", uint32(e.Ballot))
	encoder.AddBool("ok", e.OK)
	if e.Error != "" {
		encoder.AddString("error", e.Error)
	}
	return nil
}

// Delegated is emitted when an account delegates or re-delegates.
type Delegated struct {
	Delegation types.Delegation
}

func (Delegated) Name() string { return "delegated" }

func (e Delegated) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	return e.Delegation.MarshalLogObject(encoder)
}

// Undelegated is emitted when an account removes its delegation.
type Undelegated struct {
	Delegator types.Address
}

func (Undelegated) Name() string { return "undelegated" }

func (e Undelegated) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("delegator", e.Delegator.String())
	return nil
}

// ProxySet is emitted when a stash account appoints a proxy.
type ProxySet struct {
	Proxy types.Address
	Stash types.Address
}

func (ProxySet) Name() string { return "proxy_set" }

func (e ProxySet) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("proxy", e.Proxy.String())
	encoder.AddString("stash", e.Stash.String())
	return nil
}

// ProxyRemoved is emitted when a proxy resigns or is cleared by its stash.
type ProxyRemoved struct {
	Proxy types.Address
	Stash types.Address
}

func (ProxyRemoved) Name() string { return "proxy_removed" }

func (e ProxyRemoved) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("proxy", e.Proxy.String())
	encoder.AddString("stash", e.Stash.String())
	return nil
}
