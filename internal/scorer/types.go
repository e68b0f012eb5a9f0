// Package scorer evaluates a résumé record against the rule catalog and
// produces a bounded score with ordered feedback.
package scorer

// RuleID identifies the rule that produced a finding.
type RuleID string

const (
	RuleLengthShort     RuleID = "LENGTH_SHORT"
	RuleLengthLong      RuleID = "LENGTH_LONG"
	RuleMeasurable      RuleID = "MEASURABLE_RESULTS"
	RuleActionVerbs     RuleID = "ACTION_VERBS"
	RuleContactMissing  RuleID = "CONTACT_MISSING"
	RuleLinkedInMissing RuleID = "LINKEDIN_MISSING"
	RuleWeakWords       RuleID = "WEAK_WORDS"
)

func (r RuleID) Valid() bool {
	switch r {
	case RuleLengthShort, RuleLengthLong, RuleMeasurable, RuleActionVerbs,
		RuleContactMissing, RuleLinkedInMissing, RuleWeakWords:
		return true
	}
	return false
}

// Severity indicates how much a finding matters to an applicant tracking system.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarn     Severity = "WARN"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarn, SeverityCritical:
		return true
	}
	return false
}

// Verdict is the overall readiness of the résumé.
type Verdict string

const (
	VerdictReady     Verdict = "ATS_READY"
	VerdictNeedsWork Verdict = "NEEDS_WORK"
)

func (v Verdict) Valid() bool {
	return v == VerdictReady || v == VerdictNeedsWork
}

// Finding is one triggered rule. Findings appear in the same order as the
// feedback lines they produced.
type Finding struct {
	Rule     RuleID   `json:"rule"`
	Severity Severity `json:"severity"`
	Penalty  int      `json:"penalty"`
	Message  string   `json:"message"`
}

// Stats records the raw measurements behind the findings.
type Stats struct {
	WordCount       int      `json:"word_count"`
	MeasurableCount int      `json:"measurable_count"`
	VerbCount       int      `json:"verb_count"`
	WeakHits        []string `json:"weak_hits,omitempty"`
}

// Result is the outcome of one evaluation.
type Result struct {
	Score    int       `json:"score"`
	Feedback []string  `json:"feedback"`
	Findings []Finding `json:"findings"`
	Stats    Stats     `json:"stats"`
}

// Summary holds the verdict, score, and severity counts.
type Summary struct {
	Verdict       Verdict `json:"verdict"`
	Score         int     `json:"score"`
	Penalty       int     `json:"penalty"`
	CriticalCount int     `json:"critical_count"`
	WarnCount     int     `json:"warn_count"`
	InfoCount     int     `json:"info_count"`
}
