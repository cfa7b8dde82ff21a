package model

import "time"

type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under-review"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusOffered     ApplicationStatus = "offered"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn   ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusSubmitted,
	ApplicationStatusUnderReview,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewed,
	ApplicationStatusOffered,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

const (
	FeedbackTypeOffer     = "offer"
	FeedbackTypeRejection = "rejection"
)

// Feedback is stored JSON-encoded in feedback_c.
type Feedback struct {
	Type    string     `json:"type" binding:"required"`
	Message string     `json:"message,omitempty"`
	Author  string     `json:"author,omitempty"`
	Rating  int        `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	GivenAt *time.Time `json:"givenAt,omitempty"`
}

// InterviewDetails is stored JSON-encoded in interview_details_c.
type InterviewDetails struct {
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Format      string     `json:"format,omitempty"`
	Location    string     `json:"location,omitempty"`
	Interviewer string     `json:"interviewer,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// StatusChange is one pipeline transition. No column backs it yet, so
// adapters always return an empty history.
type StatusChange struct {
	Status    ApplicationStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
}

type Application struct {
	ID               int64             `json:"Id"`
	CandidateName    string            `json:"candidateName"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	CoverLetter      string            `json:"coverLetter"`
	ResumeURL        string            `json:"resumeUrl"`
	Status           ApplicationStatus `json:"status"`
	SubmittedDate    time.Time         `json:"submittedDate"`
	JobID            int64             `json:"jobId"`
	Feedback         *Feedback         `json:"feedback"`
	InterviewDetails *InterviewDetails `json:"interviewDetails"`
	StatusHistory    []StatusChange    `json:"statusHistory"`
	// Job is set only when the store expanded job_id_c.
	Job *JobSummary `json:"job"`
}

type CreateApplicationReq struct {
	CandidateName    string            `json:"candidateName" form:"candidateName" binding:"required,max=200"`
	Email            string            `json:"email" form:"email" binding:"required,email"`
	Phone            string            `json:"phone" form:"phone"`
	CoverLetter      string            `json:"coverLetter" form:"coverLetter"`
	ResumeURL        string            `json:"resumeUrl" form:"resumeUrl" binding:"omitempty,url"`
	Status           ApplicationStatus `json:"status" form:"-" binding:"omitempty,appstatus"`
	SubmittedDate    *time.Time        `json:"submittedDate" form:"-"`
	JobID            int64             `json:"jobId" form:"-" binding:"required,min=1"`
	Feedback         *Feedback         `json:"feedback" form:"-"`
	InterviewDetails *InterviewDetails `json:"interviewDetails" form:"-"`
}

type PatchApplicationReq struct {
	CandidateName    *string            `json:"candidateName,omitempty"`
	Email            *string            `json:"email,omitempty" binding:"omitempty,email"`
	Phone            *string            `json:"phone,omitempty"`
	CoverLetter      *string            `json:"coverLetter,omitempty"`
	ResumeURL        *string            `json:"resumeUrl,omitempty"`
	Status           *ApplicationStatus `json:"status,omitempty" binding:"omitempty,appstatus"`
	SubmittedDate    *time.Time         `json:"submittedDate,omitempty"`
	JobID            *int64             `json:"jobId,omitempty" binding:"omitempty,min=1"`
	Feedback         *Feedback          `json:"feedback,omitempty"`
	InterviewDetails *InterviewDetails  `json:"interviewDetails,omitempty"`
}

type ApplicationStats struct {
	Total        int                       `json:"total"`
	ByStatus     map[ApplicationStatus]int `json:"byStatus"`
	ResponseRate int                       `json:"responseRate"`
}
