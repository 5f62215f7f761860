package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/db"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/repository"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/google/uuid"
)

type noteService struct {
	dataset  DatasetService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewNoteService generates notes against the dataset's current bundle. uow
// may be nil when history is unavailable; saving then fails.
func NewNoteService(dataset DatasetService, uow db.UnitOfWork, observers ...UseCaseObserver) NoteService {
	return &noteService{
		dataset:  dataset,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *noteService) Generate(ctx context.Context, req contract.NotesRequest) (resp *contract.NotesResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"boiler": req.Boiler.From + ">" + req.Boiler.To,
		"flue":   req.Flue.From + ">" + req.Flue.To,
		"flags":  len(req.Flags),
		"save":   req.Save,
	}
	defer observe(ctx, s.observer, "generate-notes", startedAt, fields, &err)

	if err = validateRequest(req); err != nil {
		return nil, err
	}
	b := s.dataset.Bundle()
	if b == nil {
		return nil, &contract.NotesError{Code: contract.ErrNoDataset, Message: "no rule data loaded"}
	}

	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}
	state := req.State()
	sections := rules.Generate(b, state, rules.Selections(req.Selected))
	fields["sections"] = len(sections)

	resp = &contract.NotesResponse{
		GeneratedAt: now,
		Reference:   req.Reference,
		State:       state,
		Sections:    sections,
		CopyAll:     rules.MergeNotes(sections),
	}

	if req.Save {
		job := &domain.Job{
			ID:        uuid.New().String(),
			Reference: req.Reference,
			State:     state,
			Notes:     sections,
			CreatedAt: now,
		}
		if err = s.save(ctx, job); err != nil {
			return nil, err
		}
		resp.JobID = job.ID
		fields["job_id"] = job.ID
	}
	return resp, nil
}

func (s *noteService) save(ctx context.Context, job *domain.Job) error {
	if s.uow == nil {
		return fmt.Errorf("saving job: history is not configured")
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteJobRepo(tx).Create(ctx, job)
	})
	if err != nil {
		return fmt.Errorf("saving job: %w", err)
	}
	return nil
}

// validateRequest rejects malformed names only. Unknown states, flags and
// codes are evaluated like any other and simply match nothing.
func validateRequest(req contract.NotesRequest) error {
	for _, f := range req.Flags {
		if strings.TrimSpace(f) == "" {
			return &contract.NotesError{Code: contract.ErrInvalidFlag, Message: "flag name is empty"}
		}
	}
	for section, codes := range req.Selected {
		if strings.TrimSpace(section) == "" {
			return &contract.NotesError{Code: contract.ErrInvalidSelection, Message: "selection has no section"}
		}
		for _, c := range codes {
			if strings.TrimSpace(c) == "" {
				return &contract.NotesError{Code: contract.ErrInvalidSelection, Message: fmt.Sprintf("empty code selected in %q", section)}
			}
		}
	}
	return nil
}
