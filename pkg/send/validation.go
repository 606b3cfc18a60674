package send

// ValidationResult is the outcome of an address check. An invalid address is
// a normal outcome, not an error.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Valid returns a passing result
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid returns a failing result with a reason for the user
func Invalid(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

func (r ValidationResult) String() string {
	if r.Valid {
		return "valid"
	}
	return "invalid: " + r.Reason
}
