package resume

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	content := `{
  "full_name": "Jane Doe",
  "email": "jane@example.com",
  "experience": [
    {"company": "Acme", "responsibilities": "Developed things.\nAutomated builds."}
  ],
  "projects": [{"name": "cli", "description": "Built a CLI."}],
  "unknown_field": 42
}`
	path := writeTempFile(t, "resume.json", content)

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatJSON {
		t.Errorf("format = %s, want json", doc.Format)
	}
	if doc.Record.FullName != "Jane Doe" {
		t.Errorf("full_name = %q", doc.Record.FullName)
	}
	if len(doc.Record.Experience) != 1 || doc.Record.Experience[0].Company != "Acme" {
		t.Errorf("unexpected experience: %+v", doc.Record.Experience)
	}
	if len(doc.Record.Projects) != 1 || doc.Record.Projects[0].Description != "Built a CLI." {
		t.Errorf("unexpected projects: %+v", doc.Record.Projects)
	}
	if !strings.HasPrefix(doc.Hash, "sha256:") {
		t.Errorf("expected sha256 prefix, got %s", doc.Hash)
	}
	if string(doc.Raw) != content {
		t.Error("raw content mismatch")
	}
}

func TestLoadYAML(t *testing.T) {
	content := `full_name: Jane Doe
phone: "555-0100"
summary: Backend engineer.
experience:
  - title: Engineer
    responsibilities: |
      Developed things.
      Automated builds.
certifications:
  - CKA
`
	path := writeTempFile(t, "resume.yml", content)

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != FormatYAML {
		t.Errorf("format = %s, want yaml", doc.Format)
	}
	if doc.Record.Phone != "555-0100" {
		t.Errorf("phone = %q", doc.Record.Phone)
	}
	if got := doc.Record.Experience[0].Responsibilities; got != "Developed things.\nAutomated builds.\n" {
		t.Errorf("responsibilities = %q", got)
	}
	if len(doc.Record.Certifications) != 1 {
		t.Errorf("expected 1 certification, got %d", len(doc.Record.Certifications))
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeTempFile(t, "empty.yaml", "\n")
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Record.FullName != "" || len(doc.Record.Experience) != 0 {
		t.Errorf("expected zero record, got %+v", doc.Record)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/resume.json")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{"experience": "not a list"}`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed record")
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.json", FormatJSON},
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"a.txt", FormatJSON},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFor(tt.path); got != tt.want {
				t.Errorf("FormatFor(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestHashStable(t *testing.T) {
	a := Hash([]byte("same"))
	b := Hash([]byte("same"))
	if a != b {
		t.Errorf("hash not stable: %s vs %s", a, b)
	}
	if a == Hash([]byte("different")) {
		t.Error("different content produced same hash")
	}
}
