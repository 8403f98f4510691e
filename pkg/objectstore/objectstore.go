package objectstore

import (
	"context"
	"errors"
	"time"
)

// ErrObjectMissing is returned when the referenced object no longer exists in
// the store; callers keep the database row for audit and surface the failure.
var ErrObjectMissing = errors.New("object not found in storage")

type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// Signer produces time-limited read URLs for stored objects. Upload is done
// by the generation pipeline; this service only signs access.
type Signer interface {
	SignURL(ctx context.Context, bucket, key string, ttl time.Duration) (*SignedURL, error)
}
