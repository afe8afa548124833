package service

import "context"

// BlobStore is the content-addressed store for receipt images. Keys are
// derived from the owner and receipt, so deleting a receipt can clean up
// its image without extra bookkeeping.
type BlobStore interface {
	// Write stores the blob under key, overwriting any previous content.
	Write(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the blob stored under key. Deleting a missing key is an error.
	Delete(ctx context.Context, key string) error
}
