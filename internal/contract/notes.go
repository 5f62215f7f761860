// Package contract defines the request and response types exchanged with
// the note service.
package contract

import (
	"time"

	"github.com/alexanderramin/depotnotes/internal/domain"
)

// NotesRequest carries one set of technician selections.
type NotesRequest struct {
	Boiler    domain.Transition
	Cylinder  domain.Transition
	Flue      domain.Transition
	Flags     []string
	Selected  map[string][]string // section title to checklist codes
	Reference string
	Save      bool
	Now       *time.Time
}

// NewNotesRequest returns a request with an empty selection map.
func NewNotesRequest() NotesRequest {
	return NotesRequest{Selected: map[string][]string{}}
}

// Select records a checklist code under a section.
func (r *NotesRequest) Select(section, code string) {
	if r.Selected == nil {
		r.Selected = map[string][]string{}
	}
	r.Selected[section] = append(r.Selected[section], code)
}

// State builds a fresh evaluation snapshot from the request.
func (r NotesRequest) State() domain.State {
	flags := make(domain.Flags, len(r.Flags))
	for _, f := range r.Flags {
		flags[f] = true
	}
	return domain.State{
		Boiler:   r.Boiler,
		Cylinder: r.Cylinder,
		Flue:     r.Flue,
		Flags:    flags,
	}
}

// NotesResponse is the generated note set.
type NotesResponse struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Reference   string               `json:"reference,omitempty"`
	State       domain.State         `json:"state"`
	Sections    []domain.SectionNote `json:"sections"`
	CopyAll     string               `json:"copy_all"`
	JobID       string               `json:"job_id,omitempty"`
}

type NotesErrorCode string

const (
	ErrInvalidFlag      NotesErrorCode = "INVALID_FLAG"
	ErrInvalidSelection NotesErrorCode = "INVALID_SELECTION"
	ErrNoDataset        NotesErrorCode = "NO_DATASET"
)

type NotesError struct {
	Code    NotesErrorCode
	Message string
}

func (e *NotesError) Error() string {
	return string(e.Code) + ": " + e.Message
}
