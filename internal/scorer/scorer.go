package scorer

import (
	"fmt"
	"strings"

	"github.com/dshills/atscritic/internal/catalog"
	"github.com/dshills/atscritic/internal/resume"
)

// Thresholds and penalties for each rule.
const (
	MinWords        = 200
	MaxWords        = 1200
	MinMeasurable   = 3
	MinActionVerbs  = 5
	MaxWeakHints    = 3
	StartScore      = 100
	PenaltyShort    = 20
	PenaltyLong     = 10
	PenaltyMeasure  = 15
	PenaltyVerbs    = 10
	PenaltyContact  = 20
	PenaltyLinkedIn = 5
	PenaltyWeakWord = 2
)

const (
	msgShort    = "Resume is too short. Add more detail to Experience and Projects."
	msgLong     = "Resume might be too long (over 2 pages). condense bullet points."
	msgMeasure  = "Found only %d measurable result(s). Aim for at least 3-5 (e.g., 'Increased sales by 20%%', 'Saved $10k')."
	msgVerbs    = "Low usage of action verbs (Found %d). Use words like 'Orchestrated', 'Developed', 'Spearheaded'."
	msgContact  = "Missing critical contact information (Email or Phone)."
	msgLinkedIn = "LinkedIn profile is recommended for better visibility."
	msgWeak     = "Found weak words: %s..."
)

// Scorer evaluates records against one compiled catalog. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	cat *catalog.Catalog
}

// New returns a Scorer bound to cat.
func New(cat *catalog.Catalog) *Scorer {
	return &Scorer{cat: cat}
}

// Catalog returns the catalog the scorer was built with.
func (s *Scorer) Catalog() *catalog.Catalog { return s.cat }

// Evaluate scores a record. It never fails: missing fields are signals.
func (s *Scorer) Evaluate(rec resume.Record) Result {
	text := AggregateText(rec)
	lower := strings.ToLower(text)

	var ev evaluation

	// 1. Length
	ev.stats.WordCount = len(strings.Fields(text))
	switch {
	case ev.stats.WordCount < MinWords:
		ev.add(RuleLengthShort, SeverityCritical, PenaltyShort, msgShort)
	case ev.stats.WordCount > MaxWords:
		ev.add(RuleLengthLong, SeverityWarn, PenaltyLong, msgLong)
	}

	// 2. Measurable results
	ev.stats.MeasurableCount = s.countMeasurable(text)
	if ev.stats.MeasurableCount < MinMeasurable {
		ev.add(RuleMeasurable, SeverityWarn, PenaltyMeasure, fmt.Sprintf(msgMeasure, ev.stats.MeasurableCount))
	}

	// 3. Action verbs
	ev.stats.VerbCount = s.countVerbs(lower)
	if ev.stats.VerbCount < MinActionVerbs {
		ev.add(RuleActionVerbs, SeverityWarn, PenaltyVerbs, fmt.Sprintf(msgVerbs, ev.stats.VerbCount))
	}

	// 4. Contact
	if rec.Email == "" || rec.Phone == "" {
		ev.add(RuleContactMissing, SeverityCritical, PenaltyContact, msgContact)
	}
	if rec.LinkedIn == "" {
		ev.add(RuleLinkedInMissing, SeverityInfo, PenaltyLinkedIn, msgLinkedIn)
	}

	// 5. Weak words
	var hints []string
	for _, w := range s.cat.Weak() {
		if strings.Contains(lower, w.Phrase) {
			ev.stats.WeakHits = append(ev.stats.WeakHits, w.Phrase)
			hints = append(hints, fmt.Sprintf("'%s' -> '%s'", w.Phrase, w.Suggestion))
		}
	}
	if len(hints) > 0 {
		if len(hints) > MaxWeakHints {
			hints = hints[:MaxWeakHints]
		}
		ev.add(RuleWeakWords, SeverityInfo, PenaltyWeakWord*len(ev.stats.WeakHits),
			fmt.Sprintf(msgWeak, strings.Join(hints, ", ")))
	}

	return ev.result()
}

func (s *Scorer) countMeasurable(text string) int {
	n := 0
	for _, re := range s.cat.Measurable() {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// countVerbs matches whole space-delimited tokens only; a verb followed by
// punctuation is not counted.
func (s *Scorer) countVerbs(lower string) int {
	padded := " " + lower + " "
	n := 0
	for _, v := range s.cat.Verbs() {
		if strings.Contains(padded, " "+v+" ") {
			n++
		}
	}
	return n
}

type evaluation struct {
	findings []Finding
	stats    Stats
}

func (e *evaluation) add(rule RuleID, sev Severity, penalty int, msg string) {
	e.findings = append(e.findings, Finding{Rule: rule, Severity: sev, Penalty: penalty, Message: msg})
}

func (e *evaluation) result() Result {
	feedback := make([]string, 0, len(e.findings))
	for _, f := range e.findings {
		feedback = append(feedback, f.Message)
	}
	findings := e.findings
	if findings == nil {
		findings = []Finding{}
	}
	return Result{
		Score:    ComputeScore(findings),
		Feedback: feedback,
		Findings: findings,
		Stats:    e.stats,
	}
}

// ComputeScore subtracts every finding's penalty from StartScore and clamps at 0.
func ComputeScore(findings []Finding) int {
	score := StartScore
	for _, f := range findings {
		score -= f.Penalty
	}
	if score < 0 {
		score = 0
	}
	return score
}
