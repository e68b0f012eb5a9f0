// Package normalize cleans résumé text for ATS parsers: it drops characters
// outside 7-bit ASCII (emoji, smart quotes, decorative bullets), trims
// whitespace, and capitalizes a leading lowercase letter.
package normalize

import (
	"regexp"
	"strings"

	"github.com/dshills/atscritic/internal/resume"
)

var nonASCII = regexp.MustCompile(`[^\x00-\x7F]+`)

// Text normalizes a single line of text. Empty input yields "".
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = nonASCII.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s != "" && s[0] >= 'a' && s[0] <= 'z' {
		s = string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// Lines normalizes each line of a multi-line bullet block and drops lines
// that end up empty.
func Lines(s string) string {
	if s == "" {
		return ""
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if n := Text(line); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, "\n")
}

// Record returns a copy of rec with its free-text fields normalized: summary,
// skills, and every responsibilities and description block, line by line.
// Contact fields are left untouched.
func Record(rec resume.Record) resume.Record {
	out := rec
	out.Summary = Text(rec.Summary)
	out.Skills = Text(rec.Skills)

	if rec.Experience != nil {
		out.Experience = make([]resume.Experience, len(rec.Experience))
		for i, e := range rec.Experience {
			e.Responsibilities = Lines(e.Responsibilities)
			out.Experience[i] = e
		}
	}
	if rec.Projects != nil {
		out.Projects = make([]resume.Project, len(rec.Projects))
		for i, p := range rec.Projects {
			p.Description = Lines(p.Description)
			out.Projects[i] = p
		}
	}
	return out
}
