package tally

// Compare returns -1, 0 or +1 if n1/d1 is less than, equal to or greater than n2/d2.
// Both denominators must be non-zero.
//
// Quotients are compared first; on a tie the remainders are compared by
// inverting both fractions, so no product of the inputs is ever computed.
func Compare(n1, d1, n2, d2 uint64) int {
	if d1 == 0 || d2 == 0 {
		panic("tally: zero denominator")
	}
	for {
		q1, q2 := n1/d1, n2/d2
		if q1 < q2 {
			return -1
		}
		if q1 > q2 {
			return 1
		}
		r1, r2 := n1%d1, n2%d2
		if r2 == 0 {
			if r1 == 0 {
				return 0
			}
			return 1
		}
		if r1 == 0 {
			return -1
		}
		// r1/d1 < r2/d2 iff d2/r2 < d1/r1
		n1, d1, n2, d2 = d2, r2, d1, r1
	}
}

// LessThan returns true iff n1/d1 < n2/d2.
func LessThan(n1, d1, n2, d2 uint64) bool {
	return Compare(n1, d1, n2, d2) < 0
}
