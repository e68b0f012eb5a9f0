package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dshills/atscritic/internal/catalog"
	"github.com/dshills/atscritic/internal/report"
	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/schema"
	"github.com/dshills/atscritic/internal/scorer"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

type golden struct {
	Score   int             `json:"score"`
	Verdict scorer.Verdict  `json:"verdict"`
	Rules   []scorer.RuleID `json:"rules"`
	Stats   struct {
		WordCount       int `json:"word_count"`
		MeasurableCount int `json:"measurable_count"`
		VerbCount       int `json:"verb_count"`
	} `json:"stats"`
	WeakHits []string `json:"weak_hits"`
	Patches  int      `json:"patches"`
}

func TestGoldenResumes(t *testing.T) {
	root := projectRoot()
	cat, err := catalog.LoadBuiltin(catalog.DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	s := scorer.New(cat)

	paths, err := filepath.Glob(filepath.Join(root, "testdata", "resumes", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no résumé fixtures found")
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(root, "testdata", "golden", name+".json"))
			if err != nil {
				t.Fatalf("failed to read golden file: %v", err)
			}
			var want golden
			if err := json.Unmarshal(data, &want); err != nil {
				t.Fatalf("failed to parse golden JSON: %v", err)
			}

			doc, err := resume.Load(path)
			if err != nil {
				t.Fatalf("failed to load résumé: %v", err)
			}
			problems, err := schema.ValidateRecord(doc)
			if err != nil {
				t.Fatal(err)
			}
			for _, p := range problems {
				t.Errorf("fixture validation error: %s", p)
			}

			rep := report.Build(s, doc.Record, report.Options{
				Version: "test",
				File:    filepath.Base(path),
				Hash:    doc.Hash,
				Patches: true,
			})
			for _, e := range schema.ValidateReport(rep) {
				t.Errorf("report validation error: %s", e)
			}

			if rep.Summary.Score != want.Score {
				t.Errorf("score = %d, want %d", rep.Summary.Score, want.Score)
			}
			if rep.Summary.Verdict != want.Verdict {
				t.Errorf("verdict = %s, want %s", rep.Summary.Verdict, want.Verdict)
			}
			if len(rep.Findings) != len(want.Rules) {
				t.Fatalf("findings = %+v, want rules %v", rep.Findings, want.Rules)
			}
			for i, rule := range want.Rules {
				if rep.Findings[i].Rule != rule {
					t.Errorf("findings[%d] = %s, want %s", i, rep.Findings[i].Rule, rule)
				}
			}
			if rep.Stats.WordCount != want.Stats.WordCount ||
				rep.Stats.MeasurableCount != want.Stats.MeasurableCount ||
				rep.Stats.VerbCount != want.Stats.VerbCount {
				t.Errorf("stats = %+v, want %+v", rep.Stats, want.Stats)
			}
			if strings.Join(rep.Stats.WeakHits, ",") != strings.Join(want.WeakHits, ",") {
				t.Errorf("weak hits = %v, want %v", rep.Stats.WeakHits, want.WeakHits)
			}
			if len(rep.Patches) != want.Patches {
				t.Errorf("patches = %d, want %d", len(rep.Patches), want.Patches)
			}

			// Scoring is a pure function of the record.
			again := s.Evaluate(doc.Record)
			if again.Score != rep.Summary.Score {
				t.Errorf("re-evaluation changed score: %d vs %d", again.Score, rep.Summary.Score)
			}
		})
	}
}
