package model

import "time"

type SavedJob struct {
	ID      int64       `json:"Id"`
	JobID   int64       `json:"JobId"`
	SavedAt time.Time   `json:"SavedAt"`
	Job     *JobSummary `json:"Job,omitempty"`
}
