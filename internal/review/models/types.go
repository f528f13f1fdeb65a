package models

// TestType is the kind of assertion a record makes about its document.
type TestType string

const (
	TypePresent  TestType = "present"
	TypeAbsent   TestType = "absent"
	TypeOrder    TestType = "order"
	TypeTable    TestType = "table"
	TypeMath     TestType = "math"
	TypeBaseline TestType = "baseline"
	// TypeUnknown covers any type value outside the known set. Such records
	// are still indexed and round-trip unchanged.
	TypeUnknown TestType = "unknown"
)

// ParseTestType maps a raw type value onto the known set.
func ParseTestType(s string) TestType {
	switch t := TestType(s); t {
	case TypePresent, TypeAbsent, TypeOrder, TypeTable, TypeMath, TypeBaseline:
		return t
	default:
		return TypeUnknown
	}
}

func (t TestType) String() string {
	return string(t)
}

// CheckStatus is the tri-state review flag of a record. The zero value means
// the record has never been reviewed.
type CheckStatus string

const (
	StatusUnreviewed CheckStatus = ""
	StatusVerified   CheckStatus = "verified"
	StatusRejected   CheckStatus = "rejected"
)

// IsDecision reports whether the status is one the review UI acts on.
func (s CheckStatus) IsDecision() bool {
	return s == StatusVerified || s == StatusRejected
}

func (s CheckStatus) String() string {
	if s == StatusUnreviewed {
		return "unreviewed"
	}
	return string(s)
}
