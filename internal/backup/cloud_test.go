package backup

import "testing"

func TestParseBucketURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		scheme     string
		raw        string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{name: "bare bucket", scheme: "s3", raw: "my-bucket", wantBucket: "my-bucket"},
		{name: "bucket with prefix", scheme: "s3", raw: "my-bucket/backups/daily", wantBucket: "my-bucket", wantPrefix: "backups/daily"},
		{name: "full url", scheme: "s3", raw: "s3://my-bucket/backups", wantBucket: "my-bucket", wantPrefix: "backups"},
		{name: "full url no prefix", scheme: "gs", raw: "gs://my-bucket", wantBucket: "my-bucket"},
		{name: "trailing slash trimmed", scheme: "s3", raw: "s3://my-bucket/backups/", wantBucket: "my-bucket", wantPrefix: "backups"},
		{name: "wrong scheme", scheme: "s3", raw: "gs://my-bucket", wantErr: true},
		{name: "empty", scheme: "s3", raw: "", wantErr: true},
		{name: "scheme without bucket", scheme: "s3", raw: "s3://", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			bucket, prefix, err := parseBucketURL(tc.scheme, tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseBucketURL(%q) succeeded, want error", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBucketURL(%q): %v", tc.raw, err)
			}
			if bucket != tc.wantBucket || prefix != tc.wantPrefix {
				t.Errorf("parseBucketURL(%q) = (%q, %q), want (%q, %q)",
					tc.raw, bucket, prefix, tc.wantBucket, tc.wantPrefix)
			}
		})
	}
}

func TestNewUploader_NoCloud(t *testing.T) {
	t.Parallel()

	u, err := NewUploader(nil)
	if err != nil {
		t.Fatalf("NewUploader(nil): %v", err)
	}
	if u != nil {
		t.Fatalf("NewUploader(nil) = %v, want nil uploader", u)
	}
}

func TestNewUploader_UnsupportedType(t *testing.T) {
	t.Parallel()

	if _, err := NewUploader(&CloudConfig{Type: "ftp", Bucket: "bucket"}); err == nil {
		t.Fatal("expected error for unsupported cloud type")
	}
}
