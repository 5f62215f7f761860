package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/depotnotes/internal/db"
	"github.com/alexanderramin/depotnotes/internal/domain"
)

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

const jobColumns = `id, reference, boiler_from, boiler_to, cylinder_from, cylinder_to,
	flue_from, flue_to, flags_json, created_at`

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	flags, err := encodeFlags(j.State.Flags)
	if err != nil {
		return err
	}
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		j.ID,
		j.Reference,
		j.State.Boiler.From, j.State.Boiler.To,
		j.State.Cylinder.From, j.State.Cylinder.To,
		j.State.Flue.From, j.State.Flue.To,
		flags,
		formatTime(j.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}

	for i, n := range j.Notes {
		lines, err := encodeLines(n.Lines)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO job_notes (job_id, position, section, lines_json, depot_note) VALUES (?, ?, ?, ?, ?)`,
			j.ID, i, n.Section, lines, n.Depot,
		)
		if err != nil {
			return fmt.Errorf("inserting note %q for job: %w", n.Section, err)
		}
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		return nil, err
	}
	notes, err := r.listNotes(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	j.Notes = notes
	return j, nil
}

// ResolveID expands a unique ID prefix to the full job ID.
func (r *SQLiteJobRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("job: %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM jobs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("resolving job id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating job ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("job %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("job %s: %w", prefix, ErrAmbiguous)
	}
}

// List returns the most recent jobs first, without their notes. A limit of
// zero or less returns every job.
func (r *SQLiteJobRepo) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

// Delete removes a job; its notes go with it through the foreign key.
func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteJobRepo) listNotes(ctx context.Context, jobID string) ([]domain.SectionNote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT section, lines_json, depot_note FROM job_notes WHERE job_id = ? ORDER BY position`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing job notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.SectionNote
	for rows.Next() {
		var n domain.SectionNote
		var lines string
		if err := rows.Scan(&n.Section, &lines, &n.Depot); err != nil {
			return nil, fmt.Errorf("scanning job note: %w", err)
		}
		if n.Lines, err = decodeLines(lines); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job notes: %w", err)
	}
	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	var flags, createdAt string
	err := row.Scan(
		&j.ID,
		&j.Reference,
		&j.State.Boiler.From, &j.State.Boiler.To,
		&j.State.Cylinder.From, &j.State.Cylinder.To,
		&j.State.Flue.From, &j.State.Flue.To,
		&flags,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	if j.State.Flags, err = decodeFlags(flags); err != nil {
		return nil, err
	}
	if j.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &j, nil
}
