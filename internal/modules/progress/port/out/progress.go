package out

import (
	"context"

	"gothere/internal/modules/progress/domain"
)

// BlobStore is the opaque key-value persistence boundary. Get reports
// ok=false for a key that was never written.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type SavedNoteWriter interface {
	WriteSavedNote(ctx context.Context, path string, note domain.SavedNote) (string, error)
}
