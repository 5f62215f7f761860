package service

import (
	"context"

	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/rules"
)

type NoteService interface {
	Generate(ctx context.Context, req contract.NotesRequest) (*contract.NotesResponse, error)
}

type HistoryService interface {
	List(ctx context.Context, limit int) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}

// DatasetService holds the rule data every evaluation reads. The bundle can
// be replaced while readers are active.
type DatasetService interface {
	Bundle() *rules.Bundle
	Swap(b *rules.Bundle)
	Source() string
	States(c domain.Component) []string
	Flags() []string
	Catalog() *catalog.Catalog
	Checklist(section string) []catalog.Entry
	Lint() []error
}
