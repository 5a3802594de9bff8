package processor

import "time"

// SweepResult summarizes one pass over the submitted queue.
type SweepResult struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Scanned    int       `json:"scanned"`
	Processed  int       `json:"processed"`
	// Undelivered counts submissions marked processed without an agent to email.
	Undelivered int      `json:"undelivered"`
	Failed      int      `json:"failed"`
	Errors      []string `json:"errors,omitempty"`
}
