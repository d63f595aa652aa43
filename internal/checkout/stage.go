package checkout

// Stage is one step of the linear checkout state machine. There are no skip
// transitions.
type Stage int

const (
	StageReview Stage = iota
	StageShipping
	StagePayment
	StageConfirmation
)

// String representation (for logging and state payloads)
func (s Stage) String() string {
	switch s {
	case StageReview:
		return "review"
	case StageShipping:
		return "shipping"
	case StagePayment:
		return "payment"
	case StageConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}
