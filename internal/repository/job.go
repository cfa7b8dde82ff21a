package repository

import (
	"context"
	"time"

	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
)

var jobFields = []record.Field{
	record.Col("Id"),
	record.Col("Name"),
	record.Col("title_c"),
	record.Col("company_c"),
	record.Col("description_c"),
	record.Col("experience_level_c"),
	record.Col("industry_c"),
	record.Col("job_type_c"),
	record.Col("location_c"),
	record.Col("posted_date_c"),
	record.Col("salary_range_c"),
	record.Col("status_c"),
}

// JobRepository adapts job_c records.
type JobRepository struct {
	store
}

func (r *JobRepository) GetAll(ctx context.Context) []model.Job {
	recs := r.fetch(ctx, record.Query{Fields: jobFields})
	now := r.now()
	jobs := make([]model.Job, 0, len(recs))
	for _, rec := range recs {
		jobs = append(jobs, jobFromRecord(rec, now))
	}
	return jobs
}

// GetByID returns nil when the job does not exist or could not be read.
func (r *JobRepository) GetByID(ctx context.Context, id int64) *model.Job {
	rec := r.get(ctx, id, record.Query{Fields: jobFields})
	if rec == nil {
		return nil
	}
	job := jobFromRecord(*rec, r.now())
	return &job
}

func (r *JobRepository) Create(ctx context.Context, req model.CreateJobReq) (*model.Job, error) {
	rec, err := r.create(ctx, jobToFields(req, r.now()))
	if err != nil {
		return nil, err
	}
	job := jobFromRecord(*rec, r.now())
	return &job, nil
}

func (r *JobRepository) Update(ctx context.Context, id int64, patch model.PatchJobReq) (*model.Job, error) {
	rec, err := r.update(ctx, id, jobPatchToFields(patch))
	if err != nil {
		return nil, err
	}
	job := jobFromRecord(*rec, r.now())
	return &job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, id)
}

func jobFromRecord(rec record.Record, now time.Time) model.Job {
	status := model.JobStatus(rec.String("status_c"))
	if status == "" {
		status = model.JobStatusActive
	}
	return model.Job{
		ID:              rec.ID,
		Title:           rec.String("title_c"),
		Company:         rec.String("company_c"),
		Description:     rec.String("description_c"),
		ExperienceLevel: rec.String("experience_level_c"),
		Industry:        rec.String("industry_c"),
		JobType:         rec.String("job_type_c"),
		Location:        rec.String("location_c"),
		PostedDate:      parseTime(rec.String("posted_date_c"), now),
		SalaryRange:     rec.String("salary_range_c"),
		Status:          status,
		Requirements:    []string{},
		Benefits:        []string{},
	}
}

func jobToFields(req model.CreateJobReq, now time.Time) record.Fields {
	name := req.Title
	if name == "" {
		name = "Untitled Job"
	}
	posted := now
	if req.PostedDate != nil {
		posted = *req.PostedDate
	}
	status := req.Status
	if status == "" {
		status = model.JobStatusActive
	}
	return record.Fields{
		"Name":               name,
		"title_c":            req.Title,
		"company_c":          req.Company,
		"description_c":      req.Description,
		"experience_level_c": req.ExperienceLevel,
		"industry_c":         req.Industry,
		"job_type_c":         req.JobType,
		"location_c":         req.Location,
		"posted_date_c":      formatTime(posted),
		"salary_range_c":     req.SalaryRange,
		"status_c":           string(status),
	}.Compact()
}

// jobPatchToFields only carries what the patch sets; defaults belong to
// creation.
func jobPatchToFields(p model.PatchJobReq) record.Fields {
	f := record.Fields{
		"Name":               optString(p.Title),
		"title_c":            optString(p.Title),
		"company_c":          optString(p.Company),
		"description_c":      optString(p.Description),
		"experience_level_c": optString(p.ExperienceLevel),
		"industry_c":         optString(p.Industry),
		"job_type_c":         optString(p.JobType),
		"location_c":         optString(p.Location),
		"salary_range_c":     optString(p.SalaryRange),
	}
	if p.PostedDate != nil {
		f["posted_date_c"] = formatTime(*p.PostedDate)
	}
	if p.Status != nil {
		f["status_c"] = string(*p.Status)
	}
	return f.Compact()
}
