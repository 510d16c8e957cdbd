package backup

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"strings"
)

// NewUploader builds the uploader for a cloud config, or nil when no cloud
// storage is configured.
func NewUploader(cloud *CloudConfig) (Uploader, error) {
	if cloud == nil {
		return nil, nil
	}
	switch cloud.Type {
	case "s3":
		return newCLIUploader("aws", "s3", cloud.Bucket)
	case "gcs":
		return newCLIUploader("gsutil", "gs", cloud.Bucket)
	default:
		return nil, fmt.Errorf("backup: unsupported cloud type %q", cloud.Type)
	}
}

// cliUploader copies archives to object storage through the vendor CLI
// (`aws s3 cp` or `gsutil cp`), keeping the Go side dependency-free.
type cliUploader struct {
	binary    string
	scheme    string
	bucket    string
	keyPrefix string
}

func newCLIUploader(binary, scheme, bucketURL string) (*cliUploader, error) {
	bucket, prefix, err := parseBucketURL(scheme, bucketURL)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("backup: %s cli not found in PATH", binary)
	}
	return &cliUploader{
		binary:    binary,
		scheme:    scheme,
		bucket:    bucket,
		keyPrefix: prefix,
	}, nil
}

// UploadFile copies localPath to the configured bucket and key prefix.
func (u *cliUploader) UploadFile(ctx context.Context, localPath string) error {
	objectKey := path.Base(localPath)
	if u.keyPrefix != "" {
		objectKey = path.Join(u.keyPrefix, objectKey)
	}
	dest := fmt.Sprintf("%s://%s/%s", u.scheme, u.bucket, objectKey)

	var cmd *exec.Cmd
	if u.binary == "aws" {
		cmd = exec.CommandContext(ctx, u.binary, "s3", "cp", localPath, dest, "--only-show-errors")
	} else {
		cmd = exec.CommandContext(ctx, u.binary, "cp", localPath, dest)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("backup: %s upload failed: %w: %s", u.binary, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// parseBucketURL splits "scheme://bucket/prefix" into bucket and optional
// prefix. A bare bucket name is accepted too.
func parseBucketURL(scheme, raw string) (bucket, prefix string, err error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		if raw == "" {
			return "", "", fmt.Errorf("backup: bucket is empty")
		}
		parts := strings.SplitN(raw, "/", 2)
		if len(parts) == 2 {
			return parts[0], strings.Trim(parts[1], "/"), nil
		}
		return raw, "", nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("backup: parse bucket url: %w", err)
	}
	if u.Scheme != scheme {
		return "", "", fmt.Errorf("backup: bucket url must use %s:// scheme", scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", "", fmt.Errorf("backup: bucket url missing bucket name")
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}
