package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
)

var shortlistFields = []record.Field{
	record.Col("Id"),
	record.Col("Name"),
	record.Col("criteria_c"),
	record.Col("number_of_candidates_c"),
	record.Col("urgency_c"),
	record.Col("additional_notes_c"),
	record.Col("employer_id_c"),
	record.Col("request_date_c"),
	record.Col("status_c"),
	record.RefCol("job_id_c", "title_c"),
	record.RefCol("job_id_c", "company_c"),
}

// ShortlistRepository adapts shortlist_request_c records.
type ShortlistRepository struct {
	store
}

func (r *ShortlistRepository) list(ctx context.Context, q record.Query) []model.ShortlistRequest {
	recs := r.fetch(ctx, q)
	now := r.now()
	out := make([]model.ShortlistRequest, 0, len(recs))
	for _, rec := range recs {
		out = append(out, shortlistFromRecord(rec, now))
	}
	return out
}

func (r *ShortlistRepository) GetAll(ctx context.Context) []model.ShortlistRequest {
	return r.list(ctx, record.Query{Fields: shortlistFields})
}

func (r *ShortlistRepository) GetByID(ctx context.Context, id int64) *model.ShortlistRequest {
	rec := r.get(ctx, id, record.Query{Fields: shortlistFields})
	if rec == nil {
		return nil
	}
	req := shortlistFromRecord(*rec, r.now())
	return &req
}

func (r *ShortlistRepository) GetByEmployerID(ctx context.Context, employerID string) []model.ShortlistRequest {
	return r.list(ctx, record.Query{
		Fields: shortlistFields,
		Where:  []record.Condition{record.Eq("employer_id_c", employerID)},
	})
}

func (r *ShortlistRepository) Create(ctx context.Context, req model.CreateShortlistReq) (*model.ShortlistRequest, error) {
	rec, err := r.create(ctx, shortlistToFields(req, r.now()))
	if err != nil {
		return nil, err
	}
	out := shortlistFromRecord(*rec, r.now())
	return &out, nil
}

func (r *ShortlistRepository) Update(ctx context.Context, id int64, patch model.PatchShortlistReq) (*model.ShortlistRequest, error) {
	rec, err := r.update(ctx, id, shortlistPatchToFields(patch))
	if err != nil {
		return nil, err
	}
	out := shortlistFromRecord(*rec, r.now())
	return &out, nil
}

func (r *ShortlistRepository) Delete(ctx context.Context, id int64) error {
	return r.remove(ctx, id)
}

func shortlistName(n int) string {
	return fmt.Sprintf("Shortlist Request - %d candidates", n)
}

func shortlistFromRecord(rec record.Record, now time.Time) model.ShortlistRequest {
	status := rec.String("status_c")
	if status == "" {
		status = model.ShortlistStatusPending
	}
	ref := rec.Reference("job_id_c")
	out := model.ShortlistRequest{
		ID:                 rec.ID,
		Criteria:           rec.String("criteria_c"),
		NumberOfCandidates: int(rec.Int("number_of_candidates_c")),
		Urgency:            rec.String("urgency_c"),
		AdditionalNotes:    rec.String("additional_notes_c"),
		EmployerID:         rec.String("employer_id_c"),
		JobID:              ref.ID,
		RequestDate:        parseTime(rec.String("request_date_c"), now),
		Status:             status,
	}
	if ref.Resolved {
		out.Job = &model.JobSummary{
			ID:      ref.ID,
			Title:   ref.Fields["title_c"],
			Company: ref.Fields["company_c"],
		}
	}
	return out
}

func shortlistToFields(req model.CreateShortlistReq, now time.Time) record.Fields {
	status := req.Status
	if status == "" {
		status = model.ShortlistStatusPending
	}
	requested := now
	if req.RequestDate != nil {
		requested = *req.RequestDate
	}
	f := record.Fields{
		"Name":                   shortlistName(req.NumberOfCandidates),
		"criteria_c":             req.Criteria,
		"number_of_candidates_c": req.NumberOfCandidates,
		"urgency_c":              req.Urgency,
		"additional_notes_c":     req.AdditionalNotes,
		"employer_id_c":          req.EmployerID,
		"request_date_c":         formatTime(requested),
		"status_c":               status,
	}
	if req.JobID != 0 {
		f["job_id_c"] = req.JobID
	}
	return f.Compact()
}

func shortlistPatchToFields(p model.PatchShortlistReq) record.Fields {
	f := record.Fields{
		"criteria_c":         optString(p.Criteria),
		"urgency_c":          optString(p.Urgency),
		"additional_notes_c": optString(p.AdditionalNotes),
		"employer_id_c":      optString(p.EmployerID),
		"status_c":           optString(p.Status),
	}
	if p.NumberOfCandidates != nil {
		f["Name"] = shortlistName(*p.NumberOfCandidates)
		f["number_of_candidates_c"] = *p.NumberOfCandidates
	}
	if p.JobID != nil && *p.JobID != 0 {
		f["job_id_c"] = *p.JobID
	}
	if p.RequestDate != nil {
		f["request_date_c"] = formatTime(*p.RequestDate)
	}
	return f.Compact()
}
