package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
	"go.uber.org/zap"
)

var applicationBaseFields = []record.Field{
	record.Col("Id"),
	record.Col("Name"),
	record.Col("candidate_name_c"),
	record.Col("email_c"),
	record.Col("phone_c"),
	record.Col("cover_letter_c"),
	record.Col("resume_url_c"),
	record.Col("status_c"),
	record.Col("submitted_date_c"),
}

var applicationFields = append(append([]record.Field{}, applicationBaseFields...),
	record.Col("feedback_c"),
	record.Col("interview_details_c"),
	record.RefCol("job_id_c", "title_c"),
	record.RefCol("job_id_c", "company_c"),
	record.RefCol("job_id_c", "location_c"),
)

// applicationByJobFields leaves job_id_c unexpanded; callers already know the job.
var applicationByJobFields = append(append([]record.Field{}, applicationBaseFields...),
	record.Col("job_id_c"),
)

// ApplicationRepository adapts application_c records.
type ApplicationRepository struct {
	store
}

func (r *ApplicationRepository) list(ctx context.Context, q record.Query) []model.Application {
	recs := r.fetch(ctx, q)
	now := r.now()
	apps := make([]model.Application, 0, len(recs))
	for _, rec := range recs {
		apps = append(apps, applicationFromRecord(rec, now, r.log))
	}
	return apps
}

func (r *ApplicationRepository) GetAll(ctx context.Context) []model.Application {
	return r.list(ctx, record.Query{Fields: applicationFields})
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) *model.Application {
	rec := r.get(ctx, id, record.Query{Fields: applicationFields})
	if rec == nil {
		return nil
	}
	app := applicationFromRecord(*rec, r.now(), r.log)
	return &app
}

func (r *ApplicationRepository) GetByStatus(ctx context.Context, status model.ApplicationStatus) []model.Application {
	return r.list(ctx, record.Query{
		Fields: applicationFields,
		Where:  []record.Condition{record.Eq("status_c", string(status))},
	})
}

func (r *ApplicationRepository) GetByJobID(ctx context.Context, jobID int64) []model.Application {
	return r.list(ctx, record.Query{
		Fields: applicationByJobFields,
		Where:  []record.Condition{record.Eq("job_id_c", jobID)},
	})
}

// GetByEmail lists the applications a candidate submitted, matching the
// address case-insensitively.
func (r *ApplicationRepository) GetByEmail(ctx context.Context, email string) []model.Application {
	if email == "" {
		return []model.Application{}
	}
	all := r.GetAll(ctx)
	out := make([]model.Application, 0, len(all))
	for _, app := range all {
		if strings.EqualFold(app.Email, email) {
			out = append(out, app)
		}
	}
	return out
}

// HasApplied reports whether email already applied to the job.
func (r *ApplicationRepository) HasApplied(ctx context.Context, jobID int64, email string) bool {
	if email == "" {
		return false
	}
	for _, app := range r.GetByJobID(ctx, jobID) {
		if app.Email != "" && strings.EqualFold(app.Email, email) {
			return true
		}
	}
	return false
}

func (r *ApplicationRepository) Create(ctx context.Context, req model.CreateApplicationReq) (*model.Application, error) {
	f, err := applicationToFields(req, r.now())
	if err != nil {
		return nil, err
	}
	rec, err := r.create(ctx, f)
	if err != nil {
		return nil, err
	}
	app := applicationFromRecord(*rec, r.now(), r.log)
	return &app, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, id int64, patch model.PatchApplicationReq) (*model.Application, error) {
	f, err := applicationPatchToFields(patch)
	if err != nil {
		return nil, err
	}
	rec, err := r.update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	app := applicationFromRecord(*rec, r.now(), r.log)
	return &app, nil
}

func (r *ApplicationRepository) Withdraw(ctx context.Context, id int64) (*model.Application, error) {
	status := model.ApplicationStatusWithdrawn
	return r.Update(ctx, id, model.PatchApplicationReq{Status: &status})
}

func (r *ApplicationRepository) UpdateInterview(ctx context.Context, id int64, details model.InterviewDetails) (*model.Application, error) {
	return r.Update(ctx, id, model.PatchApplicationReq{InterviewDetails: &details})
}

// AddFeedback stores the feedback and moves the application to offered or
// rejected when the feedback type says so.
func (r *ApplicationRepository) AddFeedback(ctx context.Context, id int64, fb model.Feedback) (*model.Application, error) {
	patch := model.PatchApplicationReq{Feedback: &fb}
	if status, ok := feedbackStatus(fb.Type); ok {
		patch.Status = &status
	}
	return r.Update(ctx, id, patch)
}

func feedbackStatus(kind string) (model.ApplicationStatus, bool) {
	switch kind {
	case model.FeedbackTypeOffer:
		return model.ApplicationStatusOffered, true
	case model.FeedbackTypeRejection:
		return model.ApplicationStatusRejected, true
	}
	return "", false
}

// GetStatistics counts every application by status. A failed read yields
// zero counts.
func (r *ApplicationRepository) GetStatistics(ctx context.Context) model.ApplicationStats {
	return Statistics(r.GetAll(ctx))
}

// Statistics aggregates apps. ResponseRate is the rounded share of
// applications that got past submission without being rejected or withdrawn.
func Statistics(apps []model.Application) model.ApplicationStats {
	stats := model.ApplicationStats{
		Total:    len(apps),
		ByStatus: make(map[model.ApplicationStatus]int, len(model.ApplicationStatuses)),
	}
	for _, s := range model.ApplicationStatuses {
		stats.ByStatus[s] = 0
	}
	for _, app := range apps {
		if _, ok := stats.ByStatus[app.Status]; ok {
			stats.ByStatus[app.Status]++
		}
	}
	if stats.Total == 0 {
		return stats
	}
	responded := stats.ByStatus[model.ApplicationStatusUnderReview] +
		stats.ByStatus[model.ApplicationStatusShortlisted] +
		stats.ByStatus[model.ApplicationStatusInterviewed] +
		stats.ByStatus[model.ApplicationStatusOffered]
	stats.ResponseRate = (200*responded + stats.Total) / (2 * stats.Total)
	return stats
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, id)
}

func applicationFromRecord(rec record.Record, now time.Time, log *zap.SugaredLogger) model.Application {
	status := model.ApplicationStatus(rec.String("status_c"))
	if status == "" {
		status = model.ApplicationStatusSubmitted
	}
	app := model.Application{
		ID:            rec.ID,
		CandidateName: rec.String("candidate_name_c"),
		Email:         rec.String("email_c"),
		Phone:         rec.String("phone_c"),
		CoverLetter:   rec.String("cover_letter_c"),
		ResumeURL:     rec.String("resume_url_c"),
		Status:        status,
		SubmittedDate: parseTime(rec.String("submitted_date_c"), now),
		StatusHistory: []model.StatusChange{},
	}

	ref := rec.Reference("job_id_c")
	app.JobID = ref.ID
	if ref.Resolved {
		app.Job = &model.JobSummary{
			ID:       ref.ID,
			Title:    ref.Fields["title_c"],
			Company:  ref.Fields["company_c"],
			Location: ref.Fields["location_c"],
		}
	}

	if raw := rec.String("feedback_c"); raw != "" {
		var fb model.Feedback
		if err := json.Unmarshal([]byte(raw), &fb); err != nil {
			log.Warnw("decode feedback failed", "id", rec.ID, "err", err)
		} else {
			app.Feedback = &fb
		}
	}
	if raw := rec.String("interview_details_c"); raw != "" {
		var details model.InterviewDetails
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			log.Warnw("decode interview details failed", "id", rec.ID, "err", err)
		} else {
			app.InterviewDetails = &details
		}
	}
	return app
}

func applicationToFields(req model.CreateApplicationReq, now time.Time) (record.Fields, error) {
	name := req.CandidateName
	if name == "" {
		name = "Application"
	}
	status := req.Status
	if status == "" {
		status = model.ApplicationStatusSubmitted
	}
	submitted := now
	if req.SubmittedDate != nil {
		submitted = *req.SubmittedDate
	}
	f := record.Fields{
		"Name":             name,
		"candidate_name_c": req.CandidateName,
		"email_c":          req.Email,
		"phone_c":          req.Phone,
		"cover_letter_c":   req.CoverLetter,
		"resume_url_c":     req.ResumeURL,
		"status_c":         string(status),
		"submitted_date_c": formatTime(submitted),
	}
	if req.JobID != 0 {
		f["job_id_c"] = req.JobID
	}
	if err := encodeSubDocuments(f, req.Feedback, req.InterviewDetails); err != nil {
		return nil, err
	}
	return f.Compact(), nil
}

func applicationPatchToFields(p model.PatchApplicationReq) (record.Fields, error) {
	f := record.Fields{
		"Name":             optString(p.CandidateName),
		"candidate_name_c": optString(p.CandidateName),
		"email_c":          optString(p.Email),
		"phone_c":          optString(p.Phone),
		"cover_letter_c":   optString(p.CoverLetter),
		"resume_url_c":     optString(p.ResumeURL),
	}
	if p.Status != nil {
		f["status_c"] = string(*p.Status)
	}
	if p.SubmittedDate != nil {
		f["submitted_date_c"] = formatTime(*p.SubmittedDate)
	}
	if p.JobID != nil && *p.JobID != 0 {
		f["job_id_c"] = *p.JobID
	}
	if err := encodeSubDocuments(f, p.Feedback, p.InterviewDetails); err != nil {
		return nil, err
	}
	return f.Compact(), nil
}

func encodeSubDocuments(f record.Fields, fb *model.Feedback, details *model.InterviewDetails) error {
	if fb != nil {
		b, err := json.Marshal(fb)
		if err != nil {
			return err
		}
		f["feedback_c"] = string(b)
	}
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return err
		}
		f["interview_details_c"] = string(b)
	}
	return nil
}
