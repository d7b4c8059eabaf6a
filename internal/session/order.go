package session

import (
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Orderer decides the order questions and options are presented in.
type Orderer interface {
	// Permutation returns a permutation of [0, n).
	Permutation(n int) []int
}

// ShuffleOrderer produces uniform random permutations with Fisher-Yates.
type ShuffleOrderer struct {
	rng *rand.Rand
}

// NewShuffleOrderer returns a shuffling orderer. A zero seed draws a random one.
func NewShuffleOrderer(seed uint64) *ShuffleOrderer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &ShuffleOrderer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (o *ShuffleOrderer) Permutation(n int) []int {
	p := identity(n)
	for i := n - 1; i > 0; i-- {
		j := o.rng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// IdentityOrderer keeps bank order.
type IdentityOrderer struct{}

func (IdentityOrderer) Permutation(n int) []int { return identity(n) }

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// orderQuestions returns a reordered copy of qs with each choice question's
// options permuted and its correct index remapped.
func orderQuestions(o Orderer, qs []bank.Question) []bank.Question {
	perm := o.Permutation(len(qs))
	out := make([]bank.Question, len(qs))
	for i, src := range perm {
		q := qs[src]
		if q.Kind == bank.KindChoice && len(q.Options) > 1 {
			q = shuffleOptions(o, q)
		}
		out[i] = q
	}
	return out
}

func shuffleOptions(o Orderer, q bank.Question) bank.Question {
	perm := o.Permutation(len(q.Options))
	opts := make([]string, len(q.Options))
	correct := -1
	for i, src := range perm {
		opts[i] = q.Options[src]
		if src == q.Correct {
			correct = i
		}
	}
	q.Options = opts
	q.Correct = correct
	return q
}
