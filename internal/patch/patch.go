// Package patch proposes weak-phrase rewrites as unified diffs and writes
// them to a patch file.
package patch

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dshills/atscritic/internal/catalog"
	"github.com/dshills/atscritic/internal/resume"
)

// Patch is a suggested single-line edit to one text field of a record.
type Patch struct {
	ID          string   `json:"id"`
	Field       string   `json:"field"`
	Line        int      `json:"line"`
	Phrases     []string `json:"phrases"`
	DiffUnified string   `json:"diff_unified"`
}

type field struct {
	path string
	text string
}

func textFields(rec resume.Record) []field {
	fields := []field{
		{"summary", rec.Summary},
		{"skills", rec.Skills},
	}
	for i, e := range rec.Experience {
		fields = append(fields, field{fmt.Sprintf("experience[%d].responsibilities", i), e.Responsibilities})
	}
	for i, p := range rec.Projects {
		fields = append(fields, field{fmt.Sprintf("projects[%d].description", i), p.Description})
	}
	return fields
}

// Suggest returns one patch per line that contains at least one weak phrase.
// All weak phrases on a line are rewritten together. Entries whose suggestion
// equals the phrase (ignoring case) are skipped since the rewrite would be a
// no-op. file labels the diff headers.
func Suggest(file string, rec resume.Record, weak []catalog.WeakWord) []Patch {
	rules := compileRewrites(weak)
	if len(rules) == 0 {
		return nil
	}

	var patches []Patch
	for _, f := range textFields(rec) {
		if f.text == "" {
			continue
		}
		for i, line := range strings.Split(f.text, "\n") {
			rewritten, hits := rewriteLine(line, rules)
			if len(hits) == 0 {
				continue
			}
			patches = append(patches, Patch{
				ID:          fmt.Sprintf("P-%d", len(patches)+1),
				Field:       f.path,
				Line:        i + 1,
				Phrases:     hits,
				DiffUnified: unified(file, f.path, i+1, line, rewritten),
			})
		}
	}
	return patches
}

type rewrite struct {
	phrase string
	re     *regexp.Regexp
	repl   string
}

func compileRewrites(weak []catalog.WeakWord) []rewrite {
	var out []rewrite
	for _, w := range weak {
		if w.Phrase == "" || strings.EqualFold(w.Phrase, w.Suggestion) {
			continue
		}
		out = append(out, rewrite{
			phrase: w.Phrase,
			re:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(w.Phrase)),
			repl:   w.Suggestion,
		})
	}
	return out
}

func rewriteLine(line string, rules []rewrite) (string, []string) {
	var hits []string
	for _, r := range rules {
		if !r.re.MatchString(line) {
			continue
		}
		hits = append(hits, r.phrase)
		line = r.re.ReplaceAllLiteralString(line, r.repl)
	}
	return line, hits
}

func unified(file, path string, line int, before, after string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s#%s\n", file, path)
	fmt.Fprintf(&b, "+++ b/%s#%s\n", file, path)
	fmt.Fprintf(&b, "@@ -%d +%d @@\n", line, line)
	fmt.Fprintf(&b, "-%s\n", before)
	fmt.Fprintf(&b, "+%s\n", after)
	return b.String()
}

// WritePatchFile writes all patch diffs to the given path.
// If there are no patches, no file is created.
func WritePatchFile(patches []Patch, outPath string) error {
	if len(patches) == 0 {
		return nil
	}

	var b strings.Builder
	for _, p := range patches {
		b.WriteString(p.DiffUnified)
		if !strings.HasSuffix(p.DiffUnified, "\n") {
			b.WriteString("\n")
		}
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("patch.WritePatchFile: %w", err)
	}
	return nil
}
