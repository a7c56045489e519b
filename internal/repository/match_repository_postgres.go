package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, candidate_id, job_id, version, previous_id, score, confidence,
	factors, reasons, recommendations, status, created_at, updated_at`

func (r *PostgresMatchRepository) Save(ctx context.Context, res match.Result) (match.Result, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return match.Result{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx,
		`SELECT id, version, status, created_at FROM match_results
		 WHERE candidate_id = $1 AND job_id = $2
		 ORDER BY version DESC LIMIT 1
		 FOR UPDATE`,
		res.CandidateID, res.JobID,
	)

	var latestID uuid.UUID
	var latestVersion int
	var latestStatus string
	var latestCreatedAt time.Time
	scanErr := row.Scan(&latestID, &latestVersion, &latestStatus, &latestCreatedAt)
	if scanErr != nil && !errors.Is(scanErr, pgx.ErrNoRows) {
		return match.Result{}, scanErr
	}

	now := time.Now().UTC()
	factors, reasons, recs, err := marshalResultPayload(res)
	if err != nil {
		return match.Result{}, err
	}

	switch {
	case scanErr != nil:
		// No prior version for the pair.
		res.ID = uuid.New()
		res.Version = 1
		res.PreviousID = nil
		res.CreatedAt = now
		res.UpdatedAt = now
		res.Status = match.StatusPending
		if err := insertResult(ctx, tx, res, factors, reasons, recs); err != nil {
			return match.Result{}, err
		}

	case match.Status(latestStatus) == match.StatusPending:
		// In-place overwrite, guarded by a status CAS: a concurrent review
		// moving the row out of pending wins and we fall back to a new
		// superseding version.
		affected, err := tx.Exec(ctx,
			`UPDATE match_results SET
				score = $2, confidence = $3, factors = $4, reasons = $5,
				recommendations = $6, updated_at = $7
			 WHERE id = $1 AND status = 'pending'`,
			latestID, res.Score, res.Confidence, factors, reasons, recs, now,
		)
		if err != nil {
			return match.Result{}, err
		}
		if affected == 0 {
			res = newVersion(res, latestID, latestVersion, now)
			if err := insertResult(ctx, tx, res, factors, reasons, recs); err != nil {
				return match.Result{}, err
			}
			break
		}
		res.ID = latestID
		res.Version = latestVersion
		res.CreatedAt = latestCreatedAt
		res.UpdatedAt = now
		res.Status = match.StatusPending

	default:
		res = newVersion(res, latestID, latestVersion, now)
		if err := insertResult(ctx, tx, res, factors, reasons, recs); err != nil {
			return match.Result{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return match.Result{}, err
	}
	return res, nil
}

func newVersion(res match.Result, prevID uuid.UUID, prevVersion int, now time.Time) match.Result {
	prev := prevID
	res.ID = uuid.New()
	res.Version = prevVersion + 1
	res.PreviousID = &prev
	res.CreatedAt = now
	res.UpdatedAt = now
	res.Status = match.StatusPending
	return res
}

func insertResult(ctx context.Context, tx database.Tx, res match.Result, factors, reasons, recs []byte) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO match_results (`+matchColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		res.ID, res.CandidateID, res.JobID, res.Version, res.PreviousID,
		res.Score, res.Confidence, factors, reasons, recs,
		string(res.Status), res.CreatedAt, res.UpdatedAt,
	)
	return err
}

func marshalResultPayload(res match.Result) (factors, reasons, recs []byte, err error) {
	if factors, err = json.Marshal(res.Factors); err != nil {
		return nil, nil, nil, err
	}
	if reasons, err = json.Marshal(res.Reasons); err != nil {
		return nil, nil, nil, err
	}
	if recs, err = json.Marshal(res.Recommendations); err != nil {
		return nil, nil, nil, err
	}
	return factors, reasons, recs, nil
}

func (r *PostgresMatchRepository) Get(ctx context.Context, id uuid.UUID) (match.Result, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM match_results WHERE id = $1`, id)
	return scanResult(row)
}

func (r *PostgresMatchRepository) Latest(ctx context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM match_results
		 WHERE candidate_id = $1 AND job_id = $2
		 ORDER BY version DESC LIMIT 1`,
		candidateID, jobID,
	)
	return scanResult(row)
}

func (r *PostgresMatchRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (candidate_id) `+matchColumns+`
		 FROM match_results WHERE job_id = $1
		 ORDER BY candidate_id, version DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	out, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	sortByScoreDesc(out)
	return out, nil
}

func (r *PostgresMatchRepository) ListAll(ctx context.Context) ([]match.Result, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (candidate_id, job_id) `+matchColumns+`
		 FROM match_results
		 ORDER BY candidate_id, job_id, version DESC`,
	)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to match.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE match_results SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

func (r *PostgresMatchRepository) Reopen(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE match_results SET status = 'pending', updated_at = now()
		 WHERE id = $1 AND status IN ('reviewed','accepted','rejected')`,
		id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

func (r *PostgresMatchRepository) AppendFeedback(ctx context.Context, fb match.Feedback) (match.Feedback, error) {
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	if _, err := r.Get(ctx, fb.MatchID); err != nil {
		return match.Feedback{}, err
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO match_feedback (id, match_id, outcome, rating, comment, user_id, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		fb.ID, fb.MatchID, string(fb.Outcome), fb.Rating, fb.Comment, fb.UserID, fb.CreatedAt,
	)
	if err != nil {
		return match.Feedback{}, err
	}
	return fb, nil
}

func (r *PostgresMatchRepository) ListFeedback(ctx context.Context) ([]match.Feedback, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, match_id, outcome, rating, comment, user_id, created_at
		 FROM match_feedback ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Feedback, 0)
	for rows.Next() {
		var fb match.Feedback
		var outcome string
		if err := rows.Scan(&fb.ID, &fb.MatchID, &outcome, &fb.Rating, &fb.Comment, &fb.UserID, &fb.CreatedAt); err != nil {
			return nil, err
		}
		fb.Outcome = match.FeedbackOutcome(outcome)
		out = append(out, fb)
	}
	return out, rows.Err()
}

func scanResult(row database.Row) (match.Result, error) {
	var res match.Result
	var status string
	var factors, reasons, recs []byte
	err := row.Scan(
		&res.ID, &res.CandidateID, &res.JobID, &res.Version, &res.PreviousID,
		&res.Score, &res.Confidence, &factors, &reasons, &recs,
		&status, &res.CreatedAt, &res.UpdatedAt,
	)
	// Only a missing row is a not-found; connection and decode failures
	// must surface as what they are.
	if errors.Is(err, pgx.ErrNoRows) {
		return match.Result{}, ErrNotFound
	}
	if err != nil {
		return match.Result{}, err
	}
	res.Status = match.Status(status)
	if err := json.Unmarshal(factors, &res.Factors); err != nil {
		return match.Result{}, err
	}
	if err := json.Unmarshal(reasons, &res.Reasons); err != nil {
		return match.Result{}, err
	}
	if err := json.Unmarshal(recs, &res.Recommendations); err != nil {
		return match.Result{}, err
	}
	return res, nil
}

func scanResults(rows database.Rows) ([]match.Result, error) {
	defer rows.Close()
	out := make([]match.Result, 0)
	for rows.Next() {
		res, err := scanResult(rowsAsRow{rows})
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type rowsAsRow struct{ rows database.Rows }

func (r rowsAsRow) Scan(dest ...any) error { return r.rows.Scan(dest...) }

func sortByScoreDesc(results []match.Result) {
	sort.SliceStable(results, func(i, k int) bool {
		return results[i].Score > results[k].Score
	})
}
