package domain

import "time"

// SectionNote is one formatted depot-note line for an output section.
type SectionNote struct {
	Section string   `json:"section"`
	Lines   []string `json:"lines"`
	Depot   string   `json:"depot"`
}

// Job is a saved note generation for a work order.
type Job struct {
	ID        string
	Reference string
	State     State
	Notes     []SectionNote
	CreatedAt time.Time
}
