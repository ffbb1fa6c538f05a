package store

import (
	"context"

	"github.com/sathesh-kumar-v/comply/core/db"
)

// Stores bundles the data access layer. With a database it persists to
// Postgres; without one it serves the seeded in-memory registry.
type Stores struct {
	actions ActionStore
	pg      *postgresActionStore
}

func NewStores(database *db.DB) *Stores {
	if database == nil {
		return &Stores{actions: newMemoryActionStore()}
	}
	pg := newPostgresActionStore(database)
	return &Stores{actions: pg, pg: pg}
}

func (s *Stores) Actions() ActionStore {
	return s.actions
}

// Bootstrap prepares backing storage. It is a no-op for the in-memory
// registry.
func (s *Stores) Bootstrap(ctx context.Context) error {
	if s.pg == nil {
		return nil
	}
	return s.pg.bootstrap(ctx)
}
