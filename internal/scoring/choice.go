package scoring

import "github.com/abhisek/quizdeck/internal/bank"

// ChoicePolicy is binary exact-match scoring: +1 when the submitted option
// text equals the correct option, -1 otherwise. There is no partial credit,
// and revealing does not change the contribution.
type ChoicePolicy struct{}

func (ChoicePolicy) Score(q bank.Question, sub Submission) Result {
	correct := q.CorrectOption()
	if correct != "" && sub.Text == correct {
		return Result{Score: 1, Passed: true}
	}
	return Result{Score: -1}
}
