package questiongen

import (
	"fmt"
	"strings"
)

// StructuralValidator enforces the Question shape invariants: non-empty
// stem and explanation, exactly five options labeled A through E in
// order, and an answer label naming one of those options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	return ValidateQuestion(q)
}

// ValidateQuestion runs the structural check directly. The evaluator uses
// it to vet caller-supplied question_data before spending an upstream
// call; the generator runs it on every LLM response. Validation is
// idempotent: a Question that passed once always passes.
func ValidateQuestion(q *Question) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: "structural",
			Message:   fmt.Sprintf(format, args...),
			Retryable: true,
		}
	}

	if q == nil {
		return fail("question is missing")
	}
	if strings.TrimSpace(q.Text) == "" {
		return fail("question text is empty")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fail("explanation is empty")
	}
	if len(q.Options) != len(OptionLabels) {
		return fail("expected %d options, got %d", len(OptionLabels), len(q.Options))
	}
	for i, opt := range q.Options {
		want := OptionLabels[i]
		if got := optionLabel(opt); got != want {
			return fail("option %d must be labeled %q, got %q", i+1, want, opt)
		}
	}

	answer := strings.ToUpper(strings.TrimSpace(q.Answer))
	for _, label := range OptionLabels {
		if answer == label {
			return nil
		}
	}
	return fail("answer %q is not one of the option labels A-E", q.Answer)
}

// optionLabel extracts the leading label from an option string, or ""
// when the option is not labeled. Accepts "A) 12", "A. 12", "A: 12",
// and "A 12".
func optionLabel(opt string) string {
	trimmed := strings.TrimSpace(opt)
	if trimmed == "" {
		return ""
	}
	head := trimmed[:1]
	if head < "A" || head > "E" {
		return ""
	}
	if len(trimmed) == 1 {
		return head
	}
	switch trimmed[1] {
	case ')', '.', ':', ' ':
		return head
	}
	return ""
}
