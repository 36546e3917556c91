package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Kind is the media resource class. It is not persisted with attachments, so
// cleanup probes KindImage first, then KindRaw. Keys are kind-prefixed to
// make the probe a real two-namespace contract.
type Kind string

const (
	KindImage Kind = "image"
	KindRaw   Kind = "raw"
)

// ErrObjectNotFound is returned by Destroy when the asset does not exist
// under the given kind.
var ErrObjectNotFound = errors.New("object not found")

// UploadParams controls asset placement. An empty PublicID gets a fresh
// random id; Overwrite allows replacing an existing asset under a fixed id
// (profile pictures keyed by member id).
type UploadParams struct {
	Folder    string
	PublicID  string
	Kind      Kind
	Overwrite bool
}

// UploadResult is the stored asset reference. PublicID is folder-qualified
// and is what Destroy expects.
type UploadResult struct {
	SecureURL string
	PublicID  string
}

// Storage is the media-host contract backing profile pictures, company
// logos and chat attachments.
type Storage interface {
	Upload(ctx context.Context, reader io.Reader, contentType string, p UploadParams) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string, kind Kind) error
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for S3/R2
	Region    string // for S3
	AccessKey string // for S3/R2
	SecretKey string // for S3/R2
	Endpoint  string // for R2 or custom S3
}

// NewStorage builds the backend selected by Config.Type.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		// R2 is S3-compatible; the endpoint selects it.
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// objectKey lays assets out as <kind>/<folder>/<id>.
func objectKey(kind Kind, publicID string) string {
	return string(kind) + "/" + publicID
}

func resolvePublicID(p UploadParams) string {
	id := p.PublicID
	if id == "" {
		id = uuid.NewString()
	}
	if p.Folder == "" {
		return id
	}
	return p.Folder + "/" + id
}
