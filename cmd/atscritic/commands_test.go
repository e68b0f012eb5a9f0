package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/atscritic/internal/resume"
)

func TestRunKeywords(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		wantFirst string
		wantLines int
	}{
		{"exact", "software engineer", "Python", 16},
		{"substring", "Senior Data Scientist II", "# matched \"data scientist\"", 16},
		{"no match", "astronaut", "no keyword set matches role \"astronaut\"", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runKeywords(newTestApp(t), tt.role, &keywordsFlags{}, &out)
			assertExitCode(t, err, 0)
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			if lines[0] != tt.wantFirst {
				t.Errorf("first line = %q, want %q", lines[0], tt.wantFirst)
			}
			if len(lines) != tt.wantLines {
				t.Errorf("got %d lines, want %d:\n%s", len(lines), tt.wantLines, out.String())
			}
		})
	}
}

func TestRunKeywordsRequiresRole(t *testing.T) {
	err := runKeywords(newTestApp(t), "", &keywordsFlags{}, &bytes.Buffer{})
	assertExitCode(t, err, 1)
}

func TestRunKeywordsPick(t *testing.T) {
	orig := pickRole
	t.Cleanup(func() { pickRole = orig })

	var offered []string
	pickRole = func(roles []string) (string, error) {
		offered = roles
		return roles[2], nil
	}

	var out bytes.Buffer
	err := runKeywords(newTestApp(t), "", &keywordsFlags{pick: true}, &out)
	assertExitCode(t, err, 0)
	if len(offered) != 6 {
		t.Errorf("offered %d roles, want 6", len(offered))
	}
	if !strings.HasPrefix(out.String(), "Product Roadmap\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	pickRole = func([]string) (string, error) { return "", errors.New("^C") }
	err = runKeywords(newTestApp(t), "", &keywordsFlags{pick: true}, &bytes.Buffer{})
	assertExitCode(t, err, 1)
}

func TestRunKeywordsInject(t *testing.T) {
	var out bytes.Buffer
	err := runKeywords(newTestApp(t), "", &keywordsFlags{inject: fixture("weak.json")}, &out)
	assertExitCode(t, err, 0)

	text := out.String()
	if !strings.HasPrefix(text, "skills: Python, Go, Docker, Java, C++") {
		t.Errorf("skills line = %q", strings.SplitN(text, "\n", 2)[0])
	}
	added := text[strings.Index(text, "added: "):]
	if strings.Contains(added, "Python") || strings.Contains(added, "Docker") {
		t.Errorf("existing skills re-added: %q", added)
	}
	if !strings.Contains(added, "Kubernetes") {
		t.Errorf("missing keyword not added: %q", added)
	}

	err = runKeywords(newTestApp(t), "", &keywordsFlags{inject: "/nonexistent.json"}, &bytes.Buffer{})
	assertExitCode(t, err, 3)
}

func TestRunNormalize(t *testing.T) {
	var out bytes.Buffer
	err := runNormalize(newTestApp(t), []string{"  café", "latte  "}, &normalizeFlags{}, nil, &out)
	assertExitCode(t, err, 0)
	if out.String() != "Caf latte\n" {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	in := strings.NewReader("héllo\n\n  wörld\n")
	err = runNormalize(newTestApp(t), nil, &normalizeFlags{}, in, &out)
	assertExitCode(t, err, 0)
	if out.String() != "Hllo\n\nWrld\n" {
		t.Errorf("stdin output = %q", out.String())
	}
}

func TestRunNormalizeRecord(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "r.json", `{"full_name":"Zoë","summary":"  résumé writer","skills":"go, rust"}`)
	var out bytes.Buffer
	err := runNormalize(newTestApp(t), nil, &normalizeFlags{record: path}, nil, &out)
	assertExitCode(t, err, 0)

	var rec resume.Record
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("output is not a JSON record: %v", err)
	}
	if rec.Summary != "Rsum writer" {
		t.Errorf("summary = %q", rec.Summary)
	}
	if rec.Skills != "Go, rust" {
		t.Errorf("skills = %q", rec.Skills)
	}
	if rec.FullName != "Zoë" {
		t.Errorf("contact fields must be left alone, got %q", rec.FullName)
	}

	ypath := writeTempFile(t, t.TempDir(), "r.yaml", "summary: ünicode\n")
	out.Reset()
	err = runNormalize(newTestApp(t), nil, &normalizeFlags{record: ypath}, nil, &out)
	assertExitCode(t, err, 0)
	if out.String() != "summary: Nicode\n" {
		t.Errorf("yaml output = %q", out.String())
	}
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	good := fixture("example.json")
	bad := writeTempFile(t, dir, "bad.json", `{"email":"nope","education":[{"degree":"BSc"}]}`)

	var out bytes.Buffer
	err := runValidate(newTestApp(t), []string{good}, &validateFlags{}, &out)
	assertExitCode(t, err, 0)
	if !strings.HasSuffix(out.String(), ": ok\n") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	err = runValidate(newTestApp(t), []string{good, bad}, &validateFlags{}, &out)
	assertExitCode(t, err, 5)
	text := out.String()
	for _, want := range []string{"bad.json: 2 problem(s)", "email", "education[0].institution"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunValidateExport(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "anon.json", `{"email":"a@b.co"}`)
	err := runValidate(newTestApp(t), []string{path}, &validateFlags{}, &bytes.Buffer{})
	assertExitCode(t, err, 0)

	var out bytes.Buffer
	err = runValidate(newTestApp(t), []string{path}, &validateFlags{export: true}, &out)
	assertExitCode(t, err, 5)
	if !strings.Contains(out.String(), "full_name") {
		t.Errorf("expected full_name problem:\n%s", out.String())
	}
}

func TestRunValidateMissingFile(t *testing.T) {
	err := runValidate(newTestApp(t), []string{"/nonexistent.yaml"}, &validateFlags{}, &bytes.Buffer{})
	assertExitCode(t, err, 3)
}

func TestRunCatalog(t *testing.T) {
	var out bytes.Buffer
	assertExitCode(t, runCatalogList(&out), 0)
	if !strings.Contains(out.String(), "default\n") {
		t.Errorf("list = %q", out.String())
	}

	out.Reset()
	assertExitCode(t, runCatalogShow(newTestApp(t), "", false, &out), 0)
	if !strings.HasPrefix(out.String(), "## Catalog: default") {
		t.Errorf("show = %q", out.String())
	}

	out.Reset()
	assertExitCode(t, runCatalogShow(newTestApp(t), "default", true, &out), 0)
	if !strings.Contains(out.String(), "weak_words:") {
		t.Errorf("yaml = %q", out.String())
	}

	err := runCatalogShow(newTestApp(t), filepath.Join(t.TempDir(), "missing.yaml"), false, &bytes.Buffer{})
	assertExitCode(t, err, 3)
}
