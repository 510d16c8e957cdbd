package backup

import "context"

// Compression formats supported for backup archives.
const (
	CompressionTarGz = "tar.gz"
	CompressionZip   = "zip"
)

// Config controls one backup run. It is loaded from a JSON file and may be
// overridden field by field from the command line.
type Config struct {
	Sources         []string     `json:"backup_sources" validate:"required,min=1,dive,required"`
	Destinations    []string     `json:"backup_destinations" validate:"required,min=1,dive,required"`
	Compression     string       `json:"compression" validate:"oneof=tar.gz zip"`
	Encryption      bool         `json:"encryption"`
	EncryptionKey   string       `json:"encryption_key,omitempty"`
	RetentionDays   int          `json:"retention_days" validate:"min=0"`
	ExcludePatterns []string     `json:"exclude_patterns"`
	NotifyEmail     string       `json:"notify_email,omitempty" validate:"omitempty,email"`
	Cloud           *CloudConfig `json:"cloud_storage,omitempty"`
}

// CloudConfig selects an optional cloud destination for finished archives.
type CloudConfig struct {
	Type   string `json:"type" validate:"oneof=s3 gcs"`
	Bucket string `json:"bucket" validate:"required"`
}

// Uploader uploads one backup artifact.
type Uploader interface {
	UploadFile(ctx context.Context, localPath string) error
}
