package types

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
)

var (
	// ErrZeroStrength is returned for a vote with no lock multiplier.
	ErrZeroStrength = errors.New("vote strength must be at least 1")
	// ErrStrengthTooHigh is returned for a vote above the configured maximum multiplier.
	ErrStrengthTooHigh = errors.New("vote strength too high")
	// ErrInvalidDirection is returned for a direction other than approve or reject.
	ErrInvalidDirection = errors.New("invalid vote direction")
)

// Direction of a vote.
type Direction uint8

const (
	// Reject votes against the ballot.
	Reject Direction = iota
	// Approve votes for the ballot.
	Approve
)

func (d Direction) String() string {
	switch d {
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection accepts "approve"/"aye" and "reject"/"nay".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "approve", "aye":
		return Approve, nil
	case "reject", "nay":
		return Reject, nil
	}
	return 0, fmt.Errorf("unknown vote direction %q", s)
}

// Vote is a direction together with a lock-period multiplier.
type Vote struct {
	Direction Direction
	// Strength multiplies the voter stake and the lock period after a passed ballot.
	Strength uint8
}

// Valid returns true for approve and reject.
func (d Direction) Valid() bool {
	return d == Approve || d == Reject
}

// Validate checks the direction and that strength is in [1, max].
func (v Vote) Validate(max uint8) error {
	if !v.Direction.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(v.Direction))
	}
	if v.Strength == 0 {
		return ErrZeroStrength
	}
	if v.Strength > max {
		return fmt.Errorf("%w: %d > %d", ErrStrengthTooHigh, v.Strength, max)
	}
	return nil
}

// MarshalLogObject implements logging interface.
func (v Vote) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("direction", v.Direction.String())
	encoder.AddUint8("strength", v.Strength)
	return nil
}

// Delegation is an outgoing delegation edge of an account.
type Delegation struct {
	Delegator   Address
	Delegate    Address
	MaxStrength uint8
}

// MarshalLogObject implements logging interface.
func (d Delegation) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("delegator", d.Delegator.String())
	encoder.AddString("delegate", d.Delegate.String())
	encoder.AddUint8("max_strength", d.MaxStrength)
	return nil
}
