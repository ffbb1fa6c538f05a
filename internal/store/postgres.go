package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sathesh-kumar-v/comply/core/db"
	"github.com/sathesh-kumar-v/comply/internal/model"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// Actions are stored as JSONB documents keyed by action id. The seq column
// preserves creation order for listing.
const actionsSchema = `
CREATE TABLE IF NOT EXISTS corrective_actions (
	seq BIGINT GENERATED ALWAYS AS IDENTITY,
	id TEXT PRIMARY KEY,
	doc JSONB NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL
)`

type postgresActionStore struct {
	db *db.DB
}

func newPostgresActionStore(database *db.DB) *postgresActionStore {
	return &postgresActionStore{db: database}
}

// bootstrap creates the actions table and loads the starter registry into
// an empty database.
func (s *postgresActionStore) bootstrap(ctx context.Context) error {
	if _, err := s.db.Pool().Exec(ctx, actionsSchema); err != nil {
		return fmt.Errorf("creating corrective_actions table: %w", err)
	}

	var count int
	if err := s.db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM corrective_actions`).Scan(&count); err != nil {
		return fmt.Errorf("counting corrective actions: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		for _, action := range seedActions() {
			doc, err := json.Marshal(action)
			if err != nil {
				return fmt.Errorf("encoding action %s: %w", action.ID, err)
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO corrective_actions (id, doc, last_updated) VALUES ($1, $2, $3)`,
				action.ID, doc, action.LastUpdated)
			if err != nil {
				return fmt.Errorf("seeding action %s: %w", action.ID, err)
			}
		}
		return nil
	})
}

func (s *postgresActionStore) List(ctx context.Context) ([]model.CorrectiveAction, error) {
	rows, err := s.db.Pool().Query(ctx, `SELECT doc FROM corrective_actions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}
	defer rows.Close()

	var out []model.CorrectiveAction
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning action: %w", err)
		}
		var action model.CorrectiveAction
		if err := json.Unmarshal(doc, &action); err != nil {
			return nil, fmt.Errorf("decoding action: %w", err)
		}
		out = append(out, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}
	return out, nil
}

func (s *postgresActionStore) GetByID(ctx context.Context, id string) (*model.CorrectiveAction, error) {
	var doc []byte
	err := s.db.Pool().QueryRow(ctx, `SELECT doc FROM corrective_actions WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("action %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching action %s: %w", id, err)
	}

	var action model.CorrectiveAction
	if err := json.Unmarshal(doc, &action); err != nil {
		return nil, fmt.Errorf("decoding action %s: %w", id, err)
	}
	return &action, nil
}

func (s *postgresActionStore) Create(ctx context.Context, action *model.CorrectiveAction) error {
	doc, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("encoding action %s: %w", action.ID, err)
	}

	_, err = s.db.Pool().Exec(ctx,
		`INSERT INTO corrective_actions (id, doc, last_updated) VALUES ($1, $2, $3)`,
		action.ID, doc, action.LastUpdated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("action %s: %w", action.ID, ErrConflict)
		}
		return fmt.Errorf("creating action %s: %w", action.ID, err)
	}
	return nil
}

func (s *postgresActionStore) Update(ctx context.Context, action *model.CorrectiveAction) error {
	doc, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("encoding action %s: %w", action.ID, err)
	}

	tag, err := s.db.Pool().Exec(ctx,
		`UPDATE corrective_actions SET doc = $2, last_updated = $3 WHERE id = $1`,
		action.ID, doc, action.LastUpdated)
	if err != nil {
		return fmt.Errorf("updating action %s: %w", action.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("action %s: %w", action.ID, ErrNotFound)
	}
	return nil
}

func (s *postgresActionStore) SaveAIMetadata(ctx context.Context, id string, meta model.AIMetadata, lastUpdated time.Time) error {
	metaDoc, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata for %s: %w", id, err)
	}
	stampDoc, err := json.Marshal(lastUpdated)
	if err != nil {
		return fmt.Errorf("encoding timestamp for %s: %w", id, err)
	}

	tag, err := s.db.Pool().Exec(ctx,
		`UPDATE corrective_actions
		 SET doc = jsonb_set(jsonb_set(doc, '{ai_metadata}', $2::jsonb), '{last_updated}', $3::jsonb),
		     last_updated = $4
		 WHERE id = $1`,
		id, metaDoc, stampDoc, lastUpdated)
	if err != nil {
		return fmt.Errorf("saving metadata for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("action %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *postgresActionStore) NextID(ctx context.Context, year int) (string, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT id FROM corrective_actions WHERE id LIKE $1`,
		fmt.Sprintf("CA-%d-%%", year))
	if err != nil {
		return "", fmt.Errorf("scanning action ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning action id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("scanning action ids: %w", err)
	}
	return nextSequentialID(ids, year), nil
}
