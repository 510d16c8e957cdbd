// Package backup archives configured directories to local and cloud
// destinations. It is a sequential pipeline of archive, checksum, optional
// GPG encryption, optional cloud sync, and retention cleanup; it shares no
// data model with the log analysis engine.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Report records the outcome of one backup run. It is written as JSON so
// external tooling can inspect the last run.
type Report struct {
	ID              string   `json:"id"`
	Timestamp       string   `json:"timestamp"`
	Success         bool     `json:"success"`
	BackupFile      string   `json:"backup_file,omitempty"`
	Checksum        string   `json:"checksum,omitempty"`
	DurationSeconds float64  `json:"duration_seconds"`
	Sources         []string `json:"sources_backed_up"`
	Destinations    []string `json:"destinations_used"`
	Compression     string   `json:"compression"`
	Encryption      bool     `json:"encryption"`
	Errors          []string `json:"errors"`
}

// Manager executes backup runs for one configuration.
type Manager struct {
	cfg Config
	log zerolog.Logger
}

// NewManager creates a manager. The configuration must already be
// validated with Config.Validate.
func NewManager(cfg Config, logger zerolog.Logger) *Manager {
	return &Manager{cfg: cfg, log: logger}
}

// ValidatePaths checks that every source exists and is a directory and
// that every destination's parent exists. All problems are reported, not
// just the first.
func (m *Manager) ValidatePaths() []error {
	var errs []error
	for _, source := range m.cfg.Sources {
		info, err := os.Stat(source)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("source path does not exist: %s", source))
		case !info.IsDir():
			errs = append(errs, fmt.Errorf("source path is not a directory: %s", source))
		}
	}
	for _, dest := range m.cfg.Destinations {
		parent := filepath.Dir(dest)
		if _, err := os.Stat(parent); err != nil {
			errs = append(errs, fmt.Errorf("destination parent path does not exist: %s", dest))
		}
	}
	return errs
}

// TotalSourceSize sums the sizes of all configured source directories.
func (m *Manager) TotalSourceSize() int64 {
	var total int64
	for _, source := range m.cfg.Sources {
		size := DirectorySize(source)
		total += size
		m.log.Info().Str("source", source).Int64("bytes", size).Msg("source size")
	}
	return total
}

// RunOnce executes a full backup pass over every destination and returns
// the run report. The report's Success field is the overall verdict; a
// cloud sync failure is recorded but does not flip it on its own.
func (m *Manager) RunOnce(ctx context.Context) *Report {
	start := time.Now()
	rep := &Report{
		ID:           uuid.NewString(),
		Success:      true,
		Sources:      m.cfg.Sources,
		Destinations: m.cfg.Destinations,
		Compression:  m.cfg.Compression,
		Encryption:   m.cfg.Encryption,
		Errors:       []string{},
	}

	if errs := m.ValidatePaths(); len(errs) > 0 {
		for _, err := range errs {
			m.log.Error().Msg(err.Error())
			rep.Errors = append(rep.Errors, err.Error())
		}
		rep.Success = false
		m.finishReport(rep, start)
		return rep
	}

	m.log.Info().Int64("total_bytes", m.TotalSourceSize()).Msg("starting backup")

	uploader, err := NewUploader(m.cfg.Cloud)
	if err != nil {
		m.log.Error().Err(err).Msg("cloud uploader init failed")
		rep.Errors = append(rep.Errors, err.Error())
		rep.Success = false
		m.finishReport(rep, start)
		return rep
	}

	for _, dest := range m.cfg.Destinations {
		if err := m.backupTo(ctx, dest, uploader, rep); err != nil {
			m.log.Error().Err(err).Str("destination", dest).Msg("backup failed")
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s: %v", dest, err))
			rep.Success = false
		}
	}

	m.finishReport(rep, start)
	return rep
}

func (m *Manager) backupTo(ctx context.Context, dest string, uploader Uploader, rep *Report) error {
	name := fmt.Sprintf("backup_%s.%s", time.Now().Format("20060102_150405"), m.cfg.Compression)
	backupPath := filepath.Join(dest, name)

	m.log.Info().Str("archive", backupPath).Msg("creating backup archive")
	checksum, err := CreateArchive(m.cfg.Sources, backupPath, m.cfg.Compression, m.cfg.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	m.log.Info().Str("archive", backupPath).Str("checksum", checksum).Msg("archive created")
	rep.BackupFile = backupPath
	rep.Checksum = checksum

	if m.cfg.Encryption {
		encrypted, err := m.encrypt(ctx, backupPath)
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
		m.log.Info().Str("archive", encrypted).Msg("archive encrypted")
		backupPath = encrypted
		rep.BackupFile = encrypted
	}

	if uploader != nil {
		if err := uploader.UploadFile(ctx, backupPath); err != nil {
			// Cloud problems are reported without failing the local backup.
			m.log.Error().Err(err).Msg("cloud sync failed")
			rep.Errors = append(rep.Errors, fmt.Sprintf("cloud sync: %v", err))
		} else {
			m.log.Info().Str("archive", backupPath).Msg("archive synced to cloud")
		}
	}

	deleted, err := m.cleanupOldBackups(dest)
	if err != nil {
		return fmt.Errorf("retention cleanup: %w", err)
	}
	if deleted > 0 {
		m.log.Info().Int("deleted", deleted).Str("destination", dest).Msg("retention cleanup")
	}
	return nil
}

// encrypt runs GPG symmetric encryption over the archive and removes the
// plaintext on success.
func (m *Manager) encrypt(ctx context.Context, path string) (string, error) {
	encrypted := path + ".gpg"
	cmd := exec.CommandContext(ctx,
		"gpg", "--batch", "--yes", "--passphrase", m.cfg.EncryptionKey,
		"--symmetric", "--cipher-algo", "AES256",
		"--output", encrypted, path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("gpg: %w: %s", err, strings.TrimSpace(string(out)))
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("remove plaintext: %w", err)
	}
	return encrypted, nil
}

// cleanupOldBackups deletes backup artifacts in dir whose modification
// time is past the retention cutoff. Zero retention disables cleanup.
func (m *Manager) cleanupOldBackups(dir string) (int, error) {
	if m.cfg.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -m.cfg.RetentionDays)

	matches, err := filepath.Glob(filepath.Join(dir, "backup_*"))
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return deleted, err
			}
			m.log.Info().Str("file", filepath.Base(path)).Msg("deleted old backup")
			deleted++
		}
	}
	return deleted, nil
}

func (m *Manager) finishReport(rep *Report, start time.Time) {
	end := time.Now()
	rep.Timestamp = end.UTC().Format(time.RFC3339)
	rep.DurationSeconds = end.Sub(start).Seconds()
}

// DefaultReportPath returns where WriteReport stores the last run report.
func DefaultReportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("backup: find home directory: %w", err)
	}
	return filepath.Join(home, ".loglens-backup", "latest_report.json"), nil
}

// WriteReport persists the run report as indented JSON, creating the
// parent directory when needed.
func WriteReport(rep *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("backup: create report dir: %w", err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("backup: marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("backup: write report: %w", err)
	}
	return nil
}
