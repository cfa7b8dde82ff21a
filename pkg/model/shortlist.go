package model

import "time"

const ShortlistStatusPending = "pending"

type ShortlistRequest struct {
	ID                 int64       `json:"Id"`
	Criteria           string      `json:"criteria"`
	NumberOfCandidates int         `json:"numberOfCandidates"`
	Urgency            string      `json:"urgency"`
	AdditionalNotes    string      `json:"additionalNotes"`
	EmployerID         string      `json:"employerId"`
	JobID              int64       `json:"jobId"`
	RequestDate        time.Time   `json:"requestDate"`
	Status             string      `json:"status"`
	Job                *JobSummary `json:"job,omitempty"`
}

type CreateShortlistReq struct {
	Criteria           string     `json:"criteria" form:"criteria" binding:"required"`
	NumberOfCandidates int        `json:"numberOfCandidates" form:"numberOfCandidates" binding:"required,min=1,max=100"`
	Urgency            string     `json:"urgency" form:"urgency" binding:"omitempty,oneof=low normal high urgent"`
	AdditionalNotes    string     `json:"additionalNotes" form:"additionalNotes"`
	EmployerID         string     `json:"employerId" form:"employerId"`
	JobID              int64      `json:"jobId" form:"jobId"`
	RequestDate        *time.Time `json:"requestDate" form:"-"`
	Status             string     `json:"status" form:"-"`
}

type PatchShortlistReq struct {
	Criteria           *string    `json:"criteria,omitempty"`
	NumberOfCandidates *int       `json:"numberOfCandidates,omitempty" binding:"omitempty,min=1,max=100"`
	Urgency            *string    `json:"urgency,omitempty" binding:"omitempty,oneof=low normal high urgent"`
	AdditionalNotes    *string    `json:"additionalNotes,omitempty"`
	EmployerID         *string    `json:"employerId,omitempty"`
	JobID              *int64     `json:"jobId,omitempty"`
	RequestDate        *time.Time `json:"requestDate,omitempty"`
	Status             *string    `json:"status,omitempty"`
}
