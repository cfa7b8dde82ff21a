package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
	"go.uber.org/zap"
)

func applicationReq(jobID int64, email string) model.CreateApplicationReq {
	return model.CreateApplicationReq{
		CandidateName: "Ada Lovelace",
		Email:         email,
		Phone:         "555-0100",
		CoverLetter:   "Hello",
		JobID:         jobID,
	}
}

func appsWithStatuses(statuses ...model.ApplicationStatus) []model.Application {
	apps := make([]model.Application, 0, len(statuses))
	for _, s := range statuses {
		apps = append(apps, model.Application{Status: s})
	}
	return apps
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name     string
		apps     []model.Application
		wantRate int
	}{
		{name: "empty", apps: nil, wantRate: 0},
		{name: "all submitted", apps: appsWithStatuses("submitted", "submitted"), wantRate: 0},
		{name: "all responded", apps: appsWithStatuses("under-review", "offered"), wantRate: 100},
		{name: "one of three rounds down", apps: appsWithStatuses("shortlisted", "rejected", "withdrawn"), wantRate: 33},
		{name: "two of three rounds up", apps: appsWithStatuses("interviewed", "offered", "submitted"), wantRate: 67},
		{name: "half rounds up", apps: appsWithStatuses("under-review", "submitted", "offered", "rejected", "shortlisted", "withdrawn", "interviewed", "submitted"), wantRate: 50},
		{name: "one of eight", apps: appsWithStatuses("offered", "submitted", "submitted", "submitted", "submitted", "submitted", "submitted", "submitted"), wantRate: 13},
		{name: "unknown status is counted in total only", apps: appsWithStatuses("archived", "offered"), wantRate: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Statistics(tt.apps)

			assert.Equal(t, len(tt.apps), stats.Total)
			assert.Len(t, stats.ByStatus, len(model.ApplicationStatuses))
			assert.Equal(t, tt.wantRate, stats.ResponseRate)
			assert.GreaterOrEqual(t, stats.ResponseRate, 0)
			assert.LessOrEqual(t, stats.ResponseRate, 100)

			known := 0
			for _, a := range tt.apps {
				if a.Status.Valid() {
					known++
				}
			}
			sum := 0
			for _, n := range stats.ByStatus {
				sum += n
			}
			assert.Equal(t, known, sum)
		})
	}
}

func TestStatisticsUnknownStatus(t *testing.T) {
	stats := Statistics(appsWithStatuses("submitted", "archived"))

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[model.ApplicationStatusSubmitted])
	assert.NotContains(t, stats.ByStatus, model.ApplicationStatus("archived"))
	assert.Equal(t, 0, stats.ResponseRate)
}

func TestHasAppliedIgnoresCase(t *testing.T) {
	client := &mockClient{}
	byJob := mock.MatchedBy(func(q record.Query) bool {
		return len(q.Where) == 1 && q.Where[0].FieldName == "job_id_c" && q.Where[0].Values[0] == int64(42) && !q.Expanded("job_id_c")
	})
	client.On("FetchRecords", mock.Anything, applicationTable, byJob).Return(&record.Response{
		Success: true,
		Data: []record.Record{
			{ID: 1, Fields: record.Fields{"email_c": "a@x.com", "job_id_c": 42}},
			{ID: 2, Fields: record.Fields{"email_c": "B@X.com", "job_id_c": 42}},
		},
	}, nil)
	repo := newTestRepository(client)

	assert.True(t, repo.Application.HasApplied(context.Background(), 42, "b@x.com"))
	assert.False(t, repo.Application.HasApplied(context.Background(), 42, "c@x.com"))
	client.AssertExpectations(t)
}

func TestHasAppliedWithoutEmail(t *testing.T) {
	client := &mockClient{}
	repo := newTestRepository(client)

	assert.False(t, repo.Application.HasApplied(context.Background(), 42, ""))
	client.AssertNotCalled(t, "FetchRecords", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()

	job, err := repo.Job.Create(ctx, jobReq("Engineer"))
	require.NoError(t, err)

	app, err := repo.Application.Create(ctx, applicationReq(job.ID, "ada@example.com"))
	require.NoError(t, err)

	got := repo.Application.GetByID(ctx, app.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Ada Lovelace", got.CandidateName)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, model.ApplicationStatusSubmitted, got.Status)
	assert.Equal(t, job.ID, got.JobID)
	assert.Equal(t, testNow, got.SubmittedDate)
	assert.NotNil(t, got.StatusHistory)
	require.NotNil(t, got.Job)
	assert.Equal(t, "Engineer", got.Job.Title)
	assert.Equal(t, "Acme", got.Job.Company)
	assert.Equal(t, "Remote", got.Job.Location)

	byJob := repo.Application.GetByJobID(ctx, job.ID)
	require.Len(t, byJob, 1)
	assert.Equal(t, job.ID, byJob[0].JobID)
	assert.Nil(t, byJob[0].Job)
}

func TestApplicationToFieldsIdempotent(t *testing.T) {
	req := applicationReq(42, "ada@example.com")
	req.Feedback = &model.Feedback{Type: "note", Message: "Strong"}

	first, err := applicationToFields(req, testNow)
	require.NoError(t, err)
	second, err := applicationToFields(req, testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(42), first["job_id_c"])
	assert.JSONEq(t, `{"type":"note","message":"Strong"}`, first["feedback_c"].(string))
	assert.NotContains(t, first, "resume_url_c")
	assert.NotContains(t, first, "interview_details_c")
}

func TestAddFeedbackStatus(t *testing.T) {
	tests := []struct {
		kind string
		want model.ApplicationStatus
	}{
		{kind: model.FeedbackTypeOffer, want: model.ApplicationStatusOffered},
		{kind: model.FeedbackTypeRejection, want: model.ApplicationStatusRejected},
		{kind: "note", want: model.ApplicationStatusShortlisted},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			ctx := context.Background()
			repo := newMemRepository()

			req := applicationReq(1, "ada@example.com")
			req.Status = model.ApplicationStatusShortlisted
			app, err := repo.Application.Create(ctx, req)
			require.NoError(t, err)

			updated, err := repo.Application.AddFeedback(ctx, app.ID, model.Feedback{Type: tt.kind, Message: "Thanks"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, updated.Status)
			require.NotNil(t, updated.Feedback)
			assert.Equal(t, tt.kind, updated.Feedback.Type)
		})
	}
}

func TestWithdrawAndInterview(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()

	app, err := repo.Application.Create(ctx, applicationReq(1, "ada@example.com"))
	require.NoError(t, err)

	updated, err := repo.Application.UpdateInterview(ctx, app.ID, model.InterviewDetails{Format: "video", Interviewer: "Grace"})
	require.NoError(t, err)
	require.NotNil(t, updated.InterviewDetails)
	assert.Equal(t, "video", updated.InterviewDetails.Format)
	assert.Equal(t, model.ApplicationStatusSubmitted, updated.Status)

	withdrawn, err := repo.Application.Withdraw(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusWithdrawn, withdrawn.Status)
	assert.Equal(t, "Grace", withdrawn.InterviewDetails.Interviewer)

	assert.Len(t, repo.Application.GetByStatus(ctx, model.ApplicationStatusWithdrawn), 1)
	assert.Empty(t, repo.Application.GetByStatus(ctx, model.ApplicationStatusSubmitted))
}

func TestGetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()

	_, err := repo.Application.Create(ctx, applicationReq(1, "Ada@Example.com"))
	require.NoError(t, err)
	_, err = repo.Application.Create(ctx, applicationReq(2, "grace@example.com"))
	require.NoError(t, err)

	mine := repo.Application.GetByEmail(ctx, "ada@example.com")
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].JobID)
	assert.Empty(t, repo.Application.GetByEmail(ctx, ""))
}

func TestApplicationFromRecordBadJSON(t *testing.T) {
	rec := record.Record{ID: 3, Fields: record.Fields{
		"feedback_c":          "{not json",
		"interview_details_c": `{"format":"onsite"}`,
		"job_id_c":            7,
	}}
	app := applicationFromRecord(rec, testNow, zap.NewNop().Sugar())

	assert.Nil(t, app.Feedback)
	require.NotNil(t, app.InterviewDetails)
	assert.Equal(t, "onsite", app.InterviewDetails.Format)
	assert.Equal(t, int64(7), app.JobID)
	assert.Nil(t, app.Job)
}

func TestGetStatisticsDegrades(t *testing.T) {
	client := &mockClient{}
	client.On("FetchRecords", mock.Anything, applicationTable, mock.Anything).
		Return(&record.Response{Success: false, Message: "unavailable"}, nil)
	repo := newTestRepository(client)

	stats := repo.Application.GetStatistics(context.Background())
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.ResponseRate)
}
