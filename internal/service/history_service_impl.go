package service

import (
	"context"
	"time"

	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/repository"
)

type historyService struct {
	jobs     repository.JobRepo
	limit    int
	observer UseCaseObserver
}

// NewHistoryService lists and manages saved jobs. defaultLimit applies when
// List is called with a non-positive limit.
func NewHistoryService(jobs repository.JobRepo, defaultLimit int, observers ...UseCaseObserver) HistoryService {
	return &historyService{jobs: jobs, limit: defaultLimit, observer: useCaseObserverOrNoop(observers)}
}

func (s *historyService) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = s.limit
	}
	return s.jobs.List(ctx, limit)
}

// Get accepts a full ID or any unique prefix of one.
func (s *historyService) Get(ctx context.Context, id string) (*domain.Job, error) {
	full, err := s.jobs.ResolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.jobs.GetByID(ctx, full)
}

func (s *historyService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"job_id": id}
	defer observe(ctx, s.observer, "delete-job", startedAt, fields, &err)

	var full string
	full, err = s.jobs.ResolveID(ctx, id)
	if err != nil {
		return err
	}
	fields["job_id"] = full
	return s.jobs.Delete(ctx, full)
}
