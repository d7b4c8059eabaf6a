package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Sub-score weights for written answers.
const (
	KeywordWeight      = 40.0
	LengthWeight       = 30.0
	LengthSaturation   = 800 // characters
	StructureSentences = 10
	StructureExamples  = 10
	CriticalConnective = 10
	CriticalBaseline   = 5
	MaxWrittenScore    = 100

	// minSentenceLen is the length a sentence must exceed to count toward structure.
	minSentenceLen = 10
	// minSentences is the number of counted sentences needed for the structure bonus.
	minSentences = 3
	// RevealPenalty is subtracted after capping and rounding.
	RevealPenalty = 1
)

var examplePhrases = []string{"example", "such as", "for instance", "including", "like"}

var connectives = []string{
	"however", "although", "therefore", "consequently",
	"furthermore", "moreover", "in contrast", "on the other hand",
}

// Breakdown is the per-component view of a written score.
type Breakdown struct {
	MatchedKeywords int
	TotalKeywords   int

	Keywords  float64 // 0-40
	Length    float64 // 0-30
	Structure int     // 0, 10 or 20
	Critical  int     // 5 or 10

	Total int // capped and rounded, before any reveal penalty
}

// WrittenPolicy scores free-text answers with the keyword heuristic.
type WrittenPolicy struct {
	PassThreshold int
}

func (p WrittenPolicy) Score(q bank.Question, sub Submission) Result {
	bd := Evaluate(sub.Text, q.Keywords)
	score := bd.Total
	if sub.UsedReveal {
		score = max(score-RevealPenalty, 0)
	}
	threshold := p.PassThreshold
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}
	return Result{
		Score:     score,
		Passed:    score >= threshold,
		Breakdown: &bd,
	}
}

// Evaluate computes the written sub-scores for text against keywords. Blank
// text short-circuits to an all-zero breakdown.
func Evaluate(text string, keywords []string) Breakdown {
	var bd Breakdown
	if strings.TrimSpace(text) == "" {
		return bd
	}

	lower := strings.ToLower(text)

	bd.MatchedKeywords, bd.TotalKeywords = matchKeywords(lower, keywords)
	if bd.TotalKeywords > 0 {
		bd.Keywords = float64(bd.MatchedKeywords) / float64(bd.TotalKeywords) * KeywordWeight
	}

	bd.Length = math.Min(float64(utf8.RuneCountInString(text))/LengthSaturation*LengthWeight, LengthWeight)

	if countSentences(text) >= minSentences && strings.Contains(text, ".") {
		bd.Structure += StructureSentences
	}
	if containsAny(lower, examplePhrases) {
		bd.Structure += StructureExamples
	}

	bd.Critical = CriticalBaseline
	if containsAny(lower, connectives) {
		bd.Critical = CriticalConnective
	}

	raw := bd.Keywords + bd.Length + float64(bd.Structure) + float64(bd.Critical)
	bd.Total = int(math.Round(math.Min(raw, MaxWrittenScore)))
	return bd
}

// matchKeywords counts keywords present in the lowercased text. A keyword
// matches when the text contains it, or when any whitespace-delimited token
// of the text is a substring of the keyword or contains it. Blank keywords
// are ignored.
func matchKeywords(lower string, keywords []string) (matched, total int) {
	tokens := strings.Fields(lower)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		total++
		if strings.Contains(lower, kw) {
			matched++
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(kw, tok) || strings.Contains(tok, kw) {
				matched++
				break
			}
		}
	}
	return matched, total
}

// countSentences counts the segments between '.', '!' and '?' whose trimmed
// length exceeds minSentenceLen.
func countSentences(text string) int {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	n := 0
	for _, p := range parts {
		if utf8.RuneCountInString(strings.TrimSpace(p)) > minSentenceLen {
			n++
		}
	}
	return n
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
