package democracy

import (
	"errors"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/ledger"
)

var (
	// ErrInsufficientBalance is returned when a deposit can't be reserved.
	ErrInsufficientBalance = ledger.ErrInsufficientBalance
	// ErrStrengthTooHigh is returned for a strength above the configured maximum.
	ErrStrengthTooHigh = types.ErrStrengthTooHigh
	// ErrZeroStrength is returned for a vote or delegation without strength.
	ErrZeroStrength = types.ErrZeroStrength
	// ErrInvalidDirection is returned for a vote that neither approves nor rejects.
	ErrInvalidDirection = types.ErrInvalidDirection
	// ErrArithmeticOverflow is returned when stake weighted totals don't fit.
	ErrArithmeticOverflow = types.ErrArithmeticOverflow

	ErrBallotNotActive     = errors.New("ballot is not active")
	ErrNotDelegated        = errors.New("account is not delegating")
	ErrAlreadyProxy        = errors.New("account is already a proxy")
	ErrNotProxy            = errors.New("account is not a proxy")
	ErrWrongProxy          = errors.New("proxy votes for another account")
	ErrOutOfOrderInjection = errors.New("ballot ends before the previously injected ballot")
	ErrInvalidThreshold    = errors.New("invalid vote threshold")
	ErrDepositTooLow       = errors.New("deposit is below minimum")
	ErrProposalTooLarge    = errors.New("proposal body is too large")
	ErrProposalNotFound    = errors.New("public proposal not found")
	ErrQueuedNotFound      = errors.New("queued enactment not found")
	ErrHeightProcessed     = errors.New("height is already processed")
)
