package project

import "context"

// Store provides persistence for projects. Implementations must not be
// assumed to share a backing: the service wiring picks one of the SQLite,
// in-memory or Redis stores at startup. Update merges a partial field set
// into the stored project; a set Materials or TimeEntries pointer replaces
// the whole owned collection. Delete cascades to both collections.
//
// Implementations guarantee single-operation atomicity only; the services
// perform no coordination between concurrent writers (last write wins).
type Store interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Summary, error)
	Update(ctx context.Context, id string, fields Update) error
	Delete(ctx context.Context, id string) error
}
