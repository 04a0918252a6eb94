package storage

import "context"

// Uploader defines the interface for pushing a local file into an object store
// This is a port that can be implemented by different infrastructure adapters
type Uploader interface {
	// Upload stores the file named by the request and returns a reference
	// addressing the stored object
	Upload(ctx context.Context, req *UploadRequest) (*ObjectRef, error)
}
