package scorer

// ReadyThreshold is the score a résumé must exceed to be considered ready.
const ReadyThreshold = 80

// ComputeSummary derives the verdict, total penalty, and severity counts
// from a result.
func ComputeSummary(r Result) Summary {
	var crit, warn, info, penalty int
	for _, f := range r.Findings {
		penalty += f.Penalty
		switch f.Severity {
		case SeverityCritical:
			crit++
		case SeverityWarn:
			warn++
		case SeverityInfo:
			info++
		}
	}

	verdict := VerdictNeedsWork
	if r.Score > ReadyThreshold {
		verdict = VerdictReady
	}

	return Summary{
		Verdict:       verdict,
		Score:         r.Score,
		Penalty:       penalty,
		CriticalCount: crit,
		WarnCount:     warn,
		InfoCount:     info,
	}
}
