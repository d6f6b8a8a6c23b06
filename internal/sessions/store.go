package sessions

import "context"

// Store maps session GUIDs to completed processing runs. Implementations
// must treat the store as append-only: a GUID is written once and never
// overwritten. The in-memory implementation below is the default; the
// interface exists so a networked cache can replace it without touching
// orchestration code.
type Store interface {
	Get(ctx context.Context, guid string) (Session, error)
	Put(ctx context.Context, s Session) error
	Contains(ctx context.Context, guid string) bool
}
