package evaluation

import "strings"

// Grade compares the student's answer to the correct answer label.
// Deterministic, local, and total: any input is a valid "wrong answer",
// never an error. Comparison is trimmed and case-insensitive, so "c"
// matches "C". This verdict is authoritative; generated feedback text is
// constrained to agree with it, never the other way around.
func Grade(studentAnswer, correctAnswer string) bool {
	return strings.EqualFold(
		strings.TrimSpace(studentAnswer),
		strings.TrimSpace(correctAnswer),
	)
}
