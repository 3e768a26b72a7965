package controller

// Status is the controller's submission state.
type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}
