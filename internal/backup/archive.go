package backup

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// shouldExclude reports whether a file name matches any exclude pattern.
// Patterns are plain substrings of the base name, not globs.
func shouldExclude(path string, patterns []string) bool {
	name := filepath.Base(path)
	for _, pattern := range patterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// CreateArchive writes all regular files under the source directories into
// a compressed archive at dest and returns its MD5 checksum. Symlinks and
// non-regular files are skipped; a file that cannot be opened fails the
// archive.
func CreateArchive(sources []string, dest, format string, excludes []string) (string, error) {
	switch format {
	case CompressionZip:
		if err := createZip(sources, dest, excludes); err != nil {
			return "", err
		}
	case CompressionTarGz, "":
		if err := createTarGz(sources, dest, excludes); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("backup: unsupported compression %q", format)
	}
	return Checksum(dest)
}

func createTarGz(sources []string, dest string, excludes []string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("backup: create archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	for _, source := range sources {
		err := walkSource(source, excludes, func(path, arcname string, info fs.FileInfo) error {
			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			hdr.Name = arcname
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(tw, f)
			return err
		})
		if err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("backup: finalize tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("backup: finalize gzip: %w", err)
	}
	return out.Close()
}

func createZip(sources []string, dest string, excludes []string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("backup: create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, source := range sources {
		err := walkSource(source, excludes, func(path, arcname string, _ fs.FileInfo) error {
			w, err := zw.Create(arcname)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(w, f)
			return err
		})
		if err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("backup: finalize zip: %w", err)
	}
	return out.Close()
}

// walkSource visits every includable regular file under source, handing fn
// the on-disk path and the archive-relative name.
func walkSource(source string, excludes []string, fn func(path, arcname string, info fs.FileInfo) error) error {
	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if shouldExclude(path, excludes) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		arcname, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		return fn(path, filepath.ToSlash(arcname), info)
	})
}

// Checksum returns the hex MD5 digest of a file. MD5 is an integrity
// fingerprint here, not a security boundary.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("backup: open for checksum: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("backup: checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DirectorySize totals the bytes of regular files under path, skipping
// symlinks and unreadable entries.
func DirectorySize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if info, ierr := d.Info(); ierr == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
