package repository

import (
	"context"

	"github.com/alexanderramin/depotnotes/internal/domain"
)

// JobRepo stores generated note sets. Create writes several rows; run it
// inside a UnitOfWork when the job and its notes must land together.
type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ResolveID(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context, limit int) ([]*domain.Job, error)
	Delete(ctx context.Context, id string) error
}
