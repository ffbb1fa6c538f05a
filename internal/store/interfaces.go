package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sathesh-kumar-v/comply/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when creating an entity whose id already exists
var ErrConflict = errors.New("already exists")

// ActionStore defines the contract for corrective action data access.
// List returns actions in creation order, which is the order registry-wide
// computations consume them in.
type ActionStore interface {
	List(ctx context.Context) ([]model.CorrectiveAction, error)
	GetByID(ctx context.Context, id string) (*model.CorrectiveAction, error)
	Create(ctx context.Context, action *model.CorrectiveAction) error
	Update(ctx context.Context, action *model.CorrectiveAction) error

	// SaveAIMetadata persists refreshed engine scores without touching
	// the rest of the record.
	SaveAIMetadata(ctx context.Context, id string, meta model.AIMetadata, lastUpdated time.Time) error

	// NextID issues the next sequential action id for the given year,
	// e.g. CA-2025-006.
	NextID(ctx context.Context, year int) (string, error)
}

// nextSequentialID computes the smallest unused sequence number for the
// year across existing ids of the form CA-<year>-<seq>.
func nextSequentialID(ids []string, year int) string {
	prefix := fmt.Sprintf("CA-%d-", year)
	maxSeq := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		seq, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, maxSeq+1)
}
