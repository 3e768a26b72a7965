package validation

// Func validates a raw input value.
type Func func(raw string) Result

// Messages used by the sign-in mobile gates. They are part of the surface
// contract and must not change.
const (
	MessageMobileInvalid    = "Please enter a valid 10-digit mobile number."
	MessageMobileIncomplete = "Mobile number must be 10 digits long."
)

// MobileLength is the exact number of digits a complete mobile number has.
const MobileLength = 10

// Validate runs fn against raw. A nil validator accepts everything.
func Validate(fn Func, raw string) Result {
	if fn == nil {
		return Accepted()
	}
	return fn(raw)
}

// MobileNumber is the per-keystroke gate for mobile numbers: only ASCII
// digits, at most ten of them. Partial numbers are accepted.
func MobileNumber(raw string) Result {
	if len(raw) > MobileLength || !isDigits(raw) {
		return Rejected(MessageMobileInvalid)
	}
	return Accepted()
}

// MobileComplete is the submit gate for mobile numbers: exactly ten
// characters. It assumes MobileNumber already guarded the charset.
func MobileComplete(raw string) Result {
	if len(raw) != MobileLength {
		return Rejected(MessageMobileIncomplete)
	}
	return Accepted()
}

func isDigits(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}
