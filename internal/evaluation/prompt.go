package evaluation

import (
	"fmt"
	"strings"

	"github.com/abhisek/quantprep/internal/questiongen"
)

const feedbackSystemPrompt = `You are a supportive and insightful GMAT tutor giving feedback on a student's answer.

Rules:
- The correctness verdict is already decided and given to you. Your feedback must agree with it; never contradict it.
- If the answer was correct, reinforce why it is right in one or two sentences.
- If the answer was incorrect, state the correct answer first, then explain the likely error and why the correct answer follows, referencing the provided explanation.
- Name the specific concept the question tests.
- Propose exactly one concrete remediation sub-topic, in the form "Area: Sub-topic".
- Keep the feedback concise and encouraging. Formal register, no slang.`

// buildFeedbackMessage renders the evaluation instruction from the
// question, the student's answer, and the locally computed verdict.
// Pure function of its inputs.
func buildFeedbackMessage(q *questiongen.Question, studentAnswer string, isCorrect bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", q.Text)
	b.WriteString("Options:\n")
	for _, opt := range q.Options {
		fmt.Fprintf(&b, "  %s\n", opt)
	}
	fmt.Fprintf(&b, "\nCorrect answer: %s\n", q.Answer)
	fmt.Fprintf(&b, "Student's answer: %s\n", studentAnswer)
	fmt.Fprintf(&b, "Verdict (authoritative): %s\n", verdictLabel(isCorrect))
	fmt.Fprintf(&b, "\nExplanation of the correct solution:\n%s\n", q.Explanation)
	return b.String()
}

func verdictLabel(isCorrect bool) string {
	if isCorrect {
		return "correct"
	}
	return "incorrect"
}
