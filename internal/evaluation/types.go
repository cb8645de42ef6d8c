package evaluation

import "fmt"

// Result is the evaluation of a student's answer. The JSON field names
// are the compatibility surface consumed by the automation client.
type Result struct {
	// IsCorrect is the deterministic local verdict. It is never taken
	// from generated text.
	IsCorrect bool `json:"is_correct"`

	// Feedback explains the verdict with reference to the question's
	// explanation.
	Feedback string `json:"feedback"`

	// RemediationTopic names a sub-topic for further study.
	RemediationTopic string `json:"remediation_topic"`
}

// BadInputError reports caller-supplied input that fails local shape
// checks. Raised before any upstream call is made; the HTTP layer maps
// it to 400.
type BadInputError struct {
	Field  string
	Reason string
}

func (e *BadInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
