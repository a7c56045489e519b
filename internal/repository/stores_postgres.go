package repository

import (
	"context"
	"encoding/json"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Profile snapshots live as JSONB documents: the authoritative profile
// service owns the relational shape, this side only needs point reads.

type PostgresCandidateStore struct {
	db database.DB
}

func NewPostgresCandidateStore(db database.DB) *PostgresCandidateStore {
	return &PostgresCandidateStore{db: db}
}

func (s *PostgresCandidateStore) Get(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := s.db.QueryRow(ctx, `SELECT profile FROM candidates WHERE id = $1`, id)
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	var c candidate.Candidate
	if err := json.Unmarshal(doc, &c); err != nil {
		return candidate.Candidate{}, err
	}
	c.ID = id
	return c, nil
}

func (s *PostgresCandidateStore) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM candidates ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type PostgresJobStore struct {
	db database.DB
}

func NewPostgresJobStore(db database.DB) *PostgresJobStore {
	return &PostgresJobStore{db: db}
}

func (s *PostgresJobStore) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := s.db.QueryRow(ctx, `SELECT posting FROM jobs WHERE id = $1`, id)
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, err
	}
	var j job.Job
	if err := json.Unmarshal(doc, &j); err != nil {
		return job.Job{}, err
	}
	j.ID = id
	return j, nil
}
