package tally

import (
	"math/bits"

	"github.com/spacemeshos/go-democracy/common/types"
)

// Isqrt returns floor(sqrt(n)).
func Isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// Approved decides if a ballot passes with the given totals.
//
// Electorate is the total issuance. Nothing passes with zero turnout.
func Approved(th types.VoteThreshold, approve, against, turnout, electorate types.Amount) bool {
	sqrtTurnout := Isqrt(uint64(turnout))
	if sqrtTurnout == 0 {
		return false
	}
	sqrtElectorate := Isqrt(uint64(electorate))
	switch th {
	case types.SimpleMajority:
		return approve > against
	case types.SuperMajorityApprove:
		// turnout can't exceed issuance unless the ledger is inconsistent
		if sqrtElectorate == 0 {
			return false
		}
		return LessThan(uint64(against), sqrtTurnout, uint64(approve), sqrtElectorate)
	case types.SuperMajorityAgainst:
		if sqrtElectorate == 0 {
			return false
		}
		return LessThan(uint64(against), sqrtElectorate, uint64(approve), sqrtTurnout)
	}
	return false
}
