package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
)

func jobReq(title string) model.CreateJobReq {
	return model.CreateJobReq{
		Title:    title,
		Company:  "Acme",
		Location: "Remote",
		JobType:  "full-time",
	}
}

func jobPatchTitle(title string) model.PatchJobReq {
	return model.PatchJobReq{Title: &title}
}

func TestJobToFields(t *testing.T) {
	f := jobToFields(jobReq("Engineer"), testNow)

	assert.Equal(t, "Engineer", f["Name"])
	assert.Equal(t, "Engineer", f["title_c"])
	assert.Equal(t, "active", f["status_c"])
	assert.Equal(t, "2025-03-14T09:30:00Z", f["posted_date_c"])
	assert.NotContains(t, f, "salary_range_c")
	assert.NotContains(t, f, "description_c")
}

func TestJobToFieldsDefaultsName(t *testing.T) {
	f := jobToFields(model.CreateJobReq{Company: "Acme"}, testNow)
	assert.Equal(t, "Untitled Job", f["Name"])
	assert.NotContains(t, f, "title_c")
}

func TestJobToFieldsIdempotent(t *testing.T) {
	req := jobReq("Engineer")
	req.SalaryRange = "$100k"
	assert.Equal(t, jobToFields(req, testNow), jobToFields(req, testNow))
}

func TestJobPatchAppliesNoDefaults(t *testing.T) {
	f := jobPatchToFields(jobPatchTitle("Staff Engineer"))
	assert.Equal(t, record.Fields{"Name": "Staff Engineer", "title_c": "Staff Engineer"}, f)
}

func TestJobFromRecordDefaults(t *testing.T) {
	job := jobFromRecord(record.Record{ID: 4, Fields: record.Fields{"title_c": "Designer"}}, testNow)

	assert.Equal(t, model.JobStatusActive, job.Status)
	assert.Equal(t, testNow, job.PostedDate)
	assert.NotNil(t, job.Requirements)
	assert.Empty(t, job.Requirements)
	assert.NotNil(t, job.Benefits)
	assert.Empty(t, job.Benefits)
}

func TestJobCreateOmitsEmptySalary(t *testing.T) {
	client := &mockClient{}
	noSalary := mock.MatchedBy(func(recs []record.Fields) bool {
		if len(recs) != 1 {
			return false
		}
		_, ok := recs[0]["salary_range_c"]
		return !ok
	})
	client.On("CreateRecord", mock.Anything, jobTable, noSalary).
		Return(created(11, record.Fields{"title_c": "Engineer", "company_c": "Acme"}), nil)
	repo := newTestRepository(client)

	job, err := repo.Job.Create(context.Background(), jobReq("Engineer"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), job.ID)
	assert.Equal(t, model.JobStatusActive, job.Status)
	client.AssertExpectations(t)
}

func TestJobReadsDegrade(t *testing.T) {
	client := &mockClient{}
	client.On("FetchRecords", mock.Anything, jobTable, mock.Anything).Return(nil, errors.New("timeout"))
	client.On("GetRecordByID", mock.Anything, jobTable, int64(5), mock.Anything).
		Return(&record.Response{Success: false, Message: "boom"}, nil)
	repo := newTestRepository(client)

	jobs := repo.Job.GetAll(context.Background())
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	assert.Nil(t, repo.Job.GetByID(context.Background(), 5))
}

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()

	job, err := repo.Job.Create(ctx, jobReq("Engineer"))
	require.NoError(t, err)

	got := repo.Job.GetByID(ctx, job.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Engineer", got.Title)
	assert.Equal(t, testNow, got.PostedDate)

	closed := model.JobStatusClosed
	updated, err := repo.Job.Update(ctx, job.ID, model.PatchJobReq{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusClosed, updated.Status)
	assert.Equal(t, "Engineer", updated.Title)

	require.NoError(t, repo.Job.Delete(ctx, job.ID))
	assert.Nil(t, repo.Job.GetByID(ctx, job.ID))
	assert.Empty(t, repo.Job.GetAll(ctx))
}
