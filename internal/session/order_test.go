package session

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
)

func TestShuffleOrdererIsAPermutation(t *testing.T) {
	o := NewShuffleOrderer(7)
	for n := 0; n < 20; n++ {
		p := o.Permutation(n)
		require.Len(t, p, n)
		sorted := append([]int(nil), p...)
		sort.Ints(sorted)
		assert.Equal(t, identity(n), sorted)
	}
}

func TestShuffleOrdererSeedIsDeterministic(t *testing.T) {
	a := NewShuffleOrderer(1234)
	b := NewShuffleOrderer(1234)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Permutation(10), b.Permutation(10))
	}
}

func TestIdentityOrderer(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, IdentityOrderer{}.Permutation(4))
	assert.Empty(t, IdentityOrderer{}.Permutation(0))
}

// reverseOrderer reverses every sequence.
type reverseOrderer struct{}

func (reverseOrderer) Permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = n - 1 - i
	}
	return p
}

func TestOrderQuestionsRemapsCorrectOption(t *testing.T) {
	qs := []bank.Question{
		{ID: "q1", Kind: bank.KindChoice, Options: []string{"right", "wrong", "worse"}, Correct: 0},
		{ID: "q2", Kind: bank.KindWritten, Keywords: []string{"k"}},
	}

	out := orderQuestions(reverseOrderer{}, qs)
	require.Len(t, out, 2)
	assert.Equal(t, "q2", out[0].ID)
	assert.Equal(t, "q1", out[1].ID)
	assert.Equal(t, []string{"worse", "wrong", "right"}, out[1].Options)
	assert.Equal(t, 2, out[1].Correct)
	assert.Equal(t, "right", out[1].CorrectOption())

	assert.Equal(t, []string{"right", "wrong", "worse"}, qs[0].Options, "source questions are not modified")
}

func TestOrderQuestionsShuffledKeepsCorrectText(t *testing.T) {
	topic := choiceTopic(10)
	for i := range topic.Questions {
		topic.Questions[i].Options = []string{"w", "x", "y", "z"}
		topic.Questions[i].Correct = i % 4
	}

	out := orderQuestions(NewShuffleOrderer(99), topic.Questions)
	want := make(map[string]string)
	for _, q := range topic.Questions {
		want[q.ID] = q.CorrectOption()
	}
	for _, q := range out {
		assert.Equal(t, want[q.ID], q.CorrectOption(), q.ID)
	}
}
