package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestManager(cfg Config) *Manager {
	return NewManager(cfg, zerolog.Nop())
}

func TestValidatePaths(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	if errs := newTestManager(cfg).ValidatePaths(); len(errs) != 0 {
		t.Fatalf("valid paths rejected: %v", errs)
	}
}

func TestValidatePaths_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Config{
		Sources:      []string{filepath.Join(tmp, "absent"), file},
		Destinations: []string{filepath.Join(tmp, "no", "such", "parent")},
	}
	errs := newTestManager(cfg).ValidatePaths()
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestRunOnce_Local(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.Sources[0], "data.txt"), []byte("payload"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rep := newTestManager(cfg).RunOnce(context.Background())
	if !rep.Success {
		t.Fatalf("run failed: %v", rep.Errors)
	}
	if rep.ID == "" || rep.Timestamp == "" {
		t.Error("report missing id or timestamp")
	}
	if !strings.HasPrefix(filepath.Base(rep.BackupFile), "backup_") {
		t.Errorf("BackupFile = %q, want backup_ prefix", rep.BackupFile)
	}
	if !strings.HasSuffix(rep.BackupFile, ".tar.gz") {
		t.Errorf("BackupFile = %q, want .tar.gz suffix", rep.BackupFile)
	}

	checksum, err := Checksum(rep.BackupFile)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if checksum != rep.Checksum {
		t.Errorf("checksum = %q, report says %q", checksum, rep.Checksum)
	}
}

func TestRunOnce_MissingSource(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Sources = []string{filepath.Join(t.TempDir(), "absent")}

	rep := newTestManager(cfg).RunOnce(context.Background())
	if rep.Success {
		t.Fatal("run with missing source reported success")
	}
	if len(rep.Errors) == 0 {
		t.Fatal("report has no errors")
	}
}

func TestCleanupOldBackups(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	old := filepath.Join(dest, "backup_20230101_000000.tar.gz")
	fresh := filepath.Join(dest, "backup_new.tar.gz")
	unrelated := filepath.Join(dest, "keepme.tar.gz")
	for _, path := range []string{old, fresh, unrelated} {
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	stale := time.Now().AddDate(0, 0, -40)
	for _, path := range []string{old, unrelated} {
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	cfg := DefaultConfig()
	deleted, err := newTestManager(cfg).cleanupOldBackups(dest)
	if err != nil {
		t.Fatalf("cleanupOldBackups: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale backup still present")
	}
	for _, path := range []string{fresh, unrelated} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s removed: %v", filepath.Base(path), err)
		}
	}
}

func TestCleanupOldBackups_RetentionDisabled(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	old := filepath.Join(dest, "backup_ancient.tar.gz")
	if err := os.WriteFile(old, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	stale := time.Now().AddDate(-1, 0, 0)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	cfg := DefaultConfig()
	cfg.RetentionDays = 0
	deleted, err := newTestManager(cfg).cleanupOldBackups(dest)
	if err != nil {
		t.Fatalf("cleanupOldBackups: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0 with retention disabled", deleted)
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reports", "latest.json")
	rep := &Report{ID: "run-1", Success: true, Errors: []string{}}
	if err := WriteReport(rep, path); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ID != "run-1" || !decoded.Success {
		t.Errorf("decoded report = %+v", decoded)
	}
}
