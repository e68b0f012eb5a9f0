package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/dshills/atscritic/internal/config"
)

const fixtures = "../../testdata/resumes"

func fixture(name string) string { return filepath.Join(fixtures, name) }

func newTestApp(t *testing.T) *app {
	t.Helper()
	v := config.New()
	cfg, err := config.Load(v, "")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return &app{v: v, cfg: cfg, log: zap.NewNop()}
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
