package storage

import (
	"fmt"
	"path/filepath"
)

// UploadRequest contains the parameters needed to upload a file to an object store
type UploadRequest struct {
	LocalPath string // Full path to the local file
	Bucket    string // Target bucket name
}

// NewUploadRequest creates a new UploadRequest with validation
func NewUploadRequest(localPath, bucket string) (*UploadRequest, error) {
	if localPath == "" {
		return nil, fmt.Errorf("local file path is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	return &UploadRequest{LocalPath: localPath, Bucket: bucket}, nil
}

// ObjectName returns the object key used inside the bucket
func (r *UploadRequest) ObjectName() string {
	return filepath.Base(r.LocalPath)
}

// ObjectRef identifies an uploaded object inside a bucket
type ObjectRef struct {
	Bucket string
	Name   string
}

// URI returns the gs:// form of the reference, as consumed by the
// speech recognition service
func (o ObjectRef) URI() string {
	return fmt.Sprintf("gs://%s/%s", o.Bucket, o.Name)
}
