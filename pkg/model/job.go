package model

import "time"

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Job is the UI shape of a job_c record.
type Job struct {
	ID              int64     `json:"Id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Description     string    `json:"description"`
	ExperienceLevel string    `json:"experienceLevel"`
	Industry        string    `json:"industry"`
	JobType         string    `json:"jobType"`
	Location        string    `json:"location"`
	PostedDate      time.Time `json:"postedDate"`
	SalaryRange     string    `json:"salaryRange"`
	Status          JobStatus `json:"status"`
	// Requirements and Benefits have no backing column yet and are always empty.
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
}

// JobSummary is the slice of a job carried by expanded references.
type JobSummary struct {
	ID       int64  `json:"Id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type CreateJobReq struct {
	Title           string     `json:"title" form:"title" binding:"required,max=200"`
	Company         string     `json:"company" form:"company" binding:"required,max=200"`
	Description     string     `json:"description" form:"description"`
	ExperienceLevel string     `json:"experienceLevel" form:"experienceLevel"`
	Industry        string     `json:"industry" form:"industry"`
	JobType         string     `json:"jobType" form:"jobType"`
	Location        string     `json:"location" form:"location"`
	PostedDate      *time.Time `json:"postedDate" form:"-"`
	SalaryRange     string     `json:"salaryRange" form:"salaryRange"`
	Status          JobStatus  `json:"status" form:"status" binding:"omitempty,oneof=active closed"`
}

// PatchJobReq carries only the fields to overwrite.
type PatchJobReq struct {
	Title           *string    `json:"title,omitempty"`
	Company         *string    `json:"company,omitempty"`
	Description     *string    `json:"description,omitempty"`
	ExperienceLevel *string    `json:"experienceLevel,omitempty"`
	Industry        *string    `json:"industry,omitempty"`
	JobType         *string    `json:"jobType,omitempty"`
	Location        *string    `json:"location,omitempty"`
	PostedDate      *time.Time `json:"postedDate,omitempty"`
	SalaryRange     *string    `json:"salaryRange,omitempty"`
	Status          *JobStatus `json:"status,omitempty" binding:"omitempty,oneof=active closed"`
}
