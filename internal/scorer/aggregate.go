package scorer

import (
	"strings"

	"github.com/dshills/atscritic/internal/resume"
)

// AggregateText joins the scored text of a record with single spaces,
// skipping empty fields. Top-level strings come first in a fixed order,
// then experience responsibilities, then project descriptions.
func AggregateText(rec resume.Record) string {
	parts := []string{
		rec.FullName, rec.Email, rec.Phone, rec.City, rec.Country,
		rec.LinkedIn, rec.GitHub, rec.TargetRole, rec.Summary, rec.Skills,
	}
	for _, e := range rec.Experience {
		parts = append(parts, e.Responsibilities)
	}
	for _, p := range rec.Projects {
		parts = append(parts, p.Description)
	}

	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
