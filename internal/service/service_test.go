package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/testutil"
)

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		t.Fatal("no use case observed")
	}
	return o.events[len(o.events)-1]
}

func combiRequest() contract.NotesRequest {
	req := contract.NewNotesRequest()
	req.Boiler = domain.Transition{From: "regular", To: "combi"}
	req.Cylinder = domain.Transition{From: "vented", To: "none"}
	req.Flue = domain.Transition{From: "open", To: "fanned_horizontal"}
	req.Flags = []string{"plume_required"}
	return req
}

func newTestDataset() DatasetService {
	return NewDatasetService(testutil.NewTestBundle(), "test")
}
