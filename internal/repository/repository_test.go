package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/jobboard/internal/record"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// mockClient is a mock implementation of record.Client.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) response(args mock.Arguments) (*record.Response, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Response), args.Error(1)
}

func (m *mockClient) FetchRecords(ctx context.Context, table string, q record.Query) (*record.Response, error) {
	return m.response(m.Called(ctx, table, q))
}

func (m *mockClient) GetRecordByID(ctx context.Context, table string, id int64, q record.Query) (*record.Response, error) {
	return m.response(m.Called(ctx, table, id, q))
}

func (m *mockClient) CreateRecord(ctx context.Context, table string, records []record.Fields) (*record.Response, error) {
	return m.response(m.Called(ctx, table, records))
}

func (m *mockClient) UpdateRecord(ctx context.Context, table string, records []record.Fields) (*record.Response, error) {
	return m.response(m.Called(ctx, table, records))
}

func (m *mockClient) DeleteRecord(ctx context.Context, table string, ids []int64) (*record.Response, error) {
	return m.response(m.Called(ctx, table, ids))
}

func newTestRepository(client record.Client) *Repository {
	repo := NewRepository(client, zap.NewNop())
	clock := func() time.Time { return testNow }
	repo.Job.now = clock
	repo.Application.now = clock
	repo.SavedJob.now = clock
	repo.Shortlist.now = clock
	repo.User.now = clock
	return repo
}

func newMemRepository() *Repository {
	return newTestRepository(record.NewMemStore(Schema()))
}

func created(id int64, fields record.Fields) *record.Response {
	return &record.Response{
		Success: true,
		Results: []record.Result{{Success: true, Data: &record.Record{ID: id, Fields: fields}}},
	}
}

func TestStoreWriteFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		resp    *record.Response
		err     error
		wantErr string
		wantIs  error
	}{
		{
			name:    "envelope failure surfaces backend message",
			resp:    &record.Response{Success: false, Message: "quota exceeded"},
			wantErr: "quota exceeded",
		},
		{
			name:    "record failure surfaces backend message",
			resp:    &record.Response{Success: true, Results: []record.Result{{Success: false, Message: "title_c too long"}}},
			wantErr: "title_c too long",
		},
		{
			name:    "record failure without message uses fallback",
			resp:    &record.Response{Success: true, Results: []record.Result{{Success: false}}},
			wantErr: "Failed to create job",
		},
		{
			name:   "empty results",
			resp:   &record.Response{Success: true},
			wantIs: ErrNoResponseData,
		},
		{
			name:    "transport error is wrapped",
			err:     errors.New("connection refused"),
			wantErr: "create job: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{}
			client.On("CreateRecord", mock.Anything, jobTable, mock.Anything).Return(tt.resp, tt.err)
			repo := newTestRepository(client)

			job, err := repo.Job.Create(ctx, jobReq("Engineer"))
			require.Error(t, err)
			assert.Nil(t, job)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestStoreBackendErrorType(t *testing.T) {
	client := &mockClient{}
	client.On("UpdateRecord", mock.Anything, jobTable, mock.Anything).
		Return(&record.Response{Success: true, Results: []record.Result{{Success: false}}}, nil)
	repo := newTestRepository(client)

	_, err := repo.Job.Update(context.Background(), 3, jobPatchTitle("x"))
	var be *record.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "update", be.Op)
	assert.Equal(t, jobTable, be.Table)
	assert.Equal(t, "Failed to update job", be.Message)
}

func TestStoreDeleteChecksResults(t *testing.T) {
	client := &mockClient{}
	client.On("DeleteRecord", mock.Anything, applicationTable, []int64{9}).
		Return(&record.Response{Success: true, Results: []record.Result{{Success: false, Message: "record 9 not found"}}}, nil)
	repo := newTestRepository(client)

	err := repo.Application.Delete(context.Background(), 9)
	assert.EqualError(t, err, "record 9 not found")
}

func TestParseTime(t *testing.T) {
	assert.Equal(t, testNow, parseTime("", testNow))
	assert.Equal(t, testNow, parseTime("not a date", testNow))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), parseTime("2024-01-02", testNow))
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), parseTime("2024-01-02T03:04:05Z", testNow))
}
