package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	cloudstorage "cloud.google.com/go/storage"

	"github.com/nprime496/gcp-audio/domain/storage"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// StorageService defines the interface for Cloud Storage object writes
// This allows mocking the Cloud Storage API in tests
type StorageService interface {
	// Write streams src into the named object, requiring that the object
	// does not already exist. Returns the number of bytes written.
	Write(ctx context.Context, bucket, object string, src io.Reader) (int64, error)
}

// GoogleStorageService is the production implementation using the Cloud Storage API
type GoogleStorageService struct {
	client *cloudstorage.Client
}

// Write streams src into the object behind a does-not-exist precondition,
// the equivalent of an if_generation_match=0 guard
func (s *GoogleStorageService) Write(ctx context.Context, bucket, object string, src io.Reader) (int64, error) {
	w := s.client.Bucket(bucket).
		Object(object).
		If(cloudstorage.Conditions{DoesNotExist: true}).
		NewWriter(ctx)

	n, err := io.Copy(w, src)
	if err != nil {
		w.Close()
		return 0, err
	}

	// The upload is not committed until the writer is closed
	if err := w.Close(); err != nil {
		return 0, err
	}

	return n, nil
}

// Uploader implements storage.Uploader using Google Cloud Storage
type Uploader struct {
	service StorageService
}

// UploaderOption is a functional option for configuring Uploader
type UploaderOption func(*Uploader)

// WithStorageService sets a custom storage service (for testing)
func WithStorageService(svc StorageService) UploaderOption {
	return func(u *Uploader) {
		u.service = svc
	}
}

// NewUploader creates a new Cloud Storage uploader
// If no options are provided, it initializes a real Cloud Storage client
func NewUploader(ctx context.Context, credentialsPath string, opts ...UploaderOption) (*Uploader, error) {
	u := &Uploader{}

	for _, opt := range opts {
		opt(u)
	}

	// If no custom storage service was provided, create a real one
	if u.service == nil {
		svc, err := newGoogleStorageService(ctx, credentialsPath)
		if err != nil {
			return nil, err
		}
		u.service = svc
	}

	return u, nil
}

// newGoogleStorageService creates a production Cloud Storage service
// An empty credentialsPath falls back to application default credentials
func newGoogleStorageService(ctx context.Context, credentialsPath string) (*GoogleStorageService, error) {
	var clientOpts []option.ClientOption

	if credentialsPath != "" {
		b, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}

		creds, err := google.CredentialsFromJSON(ctx, b, cloudstorage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %w", err)
		}

		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}

	client, err := cloudstorage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create storage client: %w", err)
	}

	return &GoogleStorageService{client: client}, nil
}

// Upload implements storage.Uploader
// An object already present under the same name is reused rather than
// treated as a failure, so a re-run can proceed to transcription.
func (u *Uploader) Upload(ctx context.Context, req *storage.UploadRequest) (*storage.ObjectRef, error) {
	f, err := os.Open(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open file for upload: %w", err)
	}
	defer f.Close()

	ref := &storage.ObjectRef{Bucket: req.Bucket, Name: req.ObjectName()}

	if _, err := u.service.Write(ctx, req.Bucket, ref.Name, f); err != nil {
		if isPreconditionFailed(err) {
			return ref, nil
		}
		return nil, fmt.Errorf("failed to upload %s to bucket %s: %w", ref.Name, req.Bucket, err)
	}

	return ref, nil
}

// isPreconditionFailed reports whether err is an HTTP 412 from the API,
// which here means the object already exists
func isPreconditionFailed(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}

// Ensure Uploader implements storage.Uploader
var _ storage.Uploader = (*Uploader)(nil)
