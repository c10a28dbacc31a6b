package contracts

import "context"

// DocumentStore persists rendered documents. Writes are best-effort: a
// failure is logged by the caller and never fails the submission.
type DocumentStore interface {
	StoreRenderedDocument(ctx context.Context, filename string, content []byte) (string, error)
}
