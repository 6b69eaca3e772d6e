package types

import "fmt"

// VoteThreshold selects how approve and against totals are compared.
type VoteThreshold uint8

const (
	// SuperMajorityApprove requires more approvals as turnout decreases.
	SuperMajorityApprove VoteThreshold = iota
	// SuperMajorityAgainst requires more rejections as turnout decreases.
	SuperMajorityAgainst
	// SimpleMajority passes with more approve than against weight.
	SimpleMajority
)

func (t VoteThreshold) String() string {
	switch t {
	case SuperMajorityApprove:
		return "super-majority-approve"
	case SuperMajorityAgainst:
		return "super-majority-against"
	case SimpleMajority:
		return "simple-majority"
	}
	return fmt.Sprintf("threshold(%d)", uint8(t))
}

// Valid reports whether t is one of the known thresholds.
func (t VoteThreshold) Valid() bool {
	return t <= SimpleMajority
}

// ParseThreshold is the inverse of VoteThreshold.String.
func ParseThreshold(s string) (VoteThreshold, error) {
	for th := SuperMajorityApprove; th <= SimpleMajority; th++ {
		if th.String() == s {
			return th, nil
		}
	}
	return 0, fmt.Errorf("unknown vote threshold %q", s)
}
