package service

import (
	"sync"

	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/rules"
)

type datasetService struct {
	mu     sync.RWMutex
	bundle *rules.Bundle
	source string
}

// NewDatasetService serves b. source names where it was loaded from, for
// display.
func NewDatasetService(b *rules.Bundle, source string) DatasetService {
	return &datasetService{bundle: b, source: source}
}

func (s *datasetService) Bundle() *rules.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// Swap replaces the bundle. A nil bundle is ignored so a failed reload
// never leaves readers without data.
func (s *datasetService) Swap(b *rules.Bundle) {
	if b == nil {
		return
	}
	s.mu.Lock()
	s.bundle = b
	s.mu.Unlock()
}

func (s *datasetService) Source() string {
	return s.source
}

func (s *datasetService) States(c domain.Component) []string {
	if b := s.Bundle(); b != nil {
		return b.Rules.States(c)
	}
	return nil
}

func (s *datasetService) Flags() []string {
	if b := s.Bundle(); b != nil {
		return b.Rules.FlagNames()
	}
	return nil
}

func (s *datasetService) Catalog() *catalog.Catalog {
	if b := s.Bundle(); b != nil {
		return b.Catalog
	}
	return nil
}

// Checklist returns the catalog entries offered for an output section,
// resolved through the section aliases.
func (s *datasetService) Checklist(section string) []catalog.Entry {
	b := s.Bundle()
	if b == nil {
		return nil
	}
	return b.Catalog.Lookup(section, b.Rules.Aliases())
}

func (s *datasetService) Lint() []error {
	return rules.Lint(s.Bundle())
}
