package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
)

var savedJobFields = []record.Field{
	record.Col("Id"),
	record.Col("Name"),
	record.Col("saved_at_c"),
	record.RefCol("job_id_c", "title_c"),
	record.RefCol("job_id_c", "company_c"),
	record.RefCol("job_id_c", "location_c"),
}

var savedJobPlainFields = []record.Field{
	record.Col("Id"),
	record.Col("saved_at_c"),
	record.Col("job_id_c"),
}

// SavedJobRepository adapts saved_job_c records. A job is saved at most once.
type SavedJobRepository struct {
	store
}

func (r *SavedJobRepository) GetAll(ctx context.Context) []model.SavedJob {
	recs := r.fetch(ctx, record.Query{Fields: savedJobFields})
	now := r.now()
	saved := make([]model.SavedJob, 0, len(recs))
	for _, rec := range recs {
		saved = append(saved, savedJobFromRecord(rec, now))
	}
	return saved
}

func (r *SavedJobRepository) GetByID(ctx context.Context, id int64) *model.SavedJob {
	rec := r.get(ctx, id, record.Query{Fields: savedJobPlainFields})
	if rec == nil {
		return nil
	}
	s := savedJobFromRecord(*rec, r.now())
	return &s
}

func (r *SavedJobRepository) byJobID(ctx context.Context, jobID int64) []record.Record {
	return r.fetch(ctx, record.Query{
		Fields: savedJobPlainFields,
		Where:  []record.Condition{record.Eq("job_id_c", jobID)},
	})
}

// IsJobSaved reports false when the lookup fails.
func (r *SavedJobRepository) IsJobSaved(ctx context.Context, jobID int64) bool {
	return len(r.byJobID(ctx, jobID)) > 0
}

// Create saves jobID. Saving an already saved job returns ErrJobAlreadySaved,
// whether the pre-check or the store's uniqueness rule catches it.
func (r *SavedJobRepository) Create(ctx context.Context, jobID int64) (*model.SavedJob, error) {
	if r.IsJobSaved(ctx, jobID) {
		return nil, ErrJobAlreadySaved
	}
	f := savedJobToFields(jobID, r.now())
	resp, err := r.client.CreateRecord(ctx, r.table, []record.Fields{f})
	if err != nil {
		r.log.Errorw("create record failed", "table", r.table, "job_id", jobID, "err", err)
		return nil, fmt.Errorf("save job %d: %w", jobID, err)
	}
	if len(resp.Results) > 0 && resp.Results[0].Code == record.CodeDuplicate {
		return nil, ErrJobAlreadySaved
	}
	rec, err := r.first("create", resp, "Failed to save job")
	if err != nil {
		return nil, err
	}
	s := savedJobFromRecord(*rec, r.now())
	return &s, nil
}

// Delete unsaves jobID.
func (r *SavedJobRepository) Delete(ctx context.Context, jobID int64) error {
	recs := r.byJobID(ctx, jobID)
	if len(recs) == 0 {
		return ErrSavedJobNotFound
	}
	return r.remove(ctx, recs[0].ID)
}

func savedJobFromRecord(rec record.Record, now time.Time) model.SavedJob {
	ref := rec.Reference("job_id_c")
	s := model.SavedJob{
		ID:      rec.ID,
		JobID:   ref.ID,
		SavedAt: parseTime(rec.String("saved_at_c"), now),
	}
	if ref.Resolved {
		s.Job = &model.JobSummary{
			ID:       ref.ID,
			Title:    ref.Fields["title_c"],
			Company:  ref.Fields["company_c"],
			Location: ref.Fields["location_c"],
		}
	}
	return s
}

func savedJobToFields(jobID int64, now time.Time) record.Fields {
	return record.Fields{
		"Name":       fmt.Sprintf("Saved Job %d", jobID),
		"job_id_c":   jobID,
		"saved_at_c": formatTime(now),
	}
}
