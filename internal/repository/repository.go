package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/talentbridge/jobboard/internal/record"
	"go.uber.org/zap"
)

const (
	jobTable         = "job_c"
	applicationTable = "application_c"
	savedJobTable    = "saved_job_c"
	shortlistTable   = "shortlist_request_c"
	userTable        = "user_c"
)

var (
	ErrNoResponseData   = errors.New("No response data received")
	ErrJobAlreadySaved  = errors.New("Job already saved")
	ErrSavedJobNotFound = errors.New("Saved job not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already exists")
)

type Repository struct {
	Job         *JobRepository
	Application *ApplicationRepository
	SavedJob    *SavedJobRepository
	Shortlist   *ShortlistRepository
	User        *UserRepository
}

func NewRepository(client record.Client, log *zap.Logger) *Repository {
	sugar := log.Sugar()
	base := func(table, entity string) store {
		return store{client: client, log: sugar, now: time.Now, table: table, entity: entity}
	}
	return &Repository{
		Job:         &JobRepository{store: base(jobTable, "job")},
		Application: &ApplicationRepository{store: base(applicationTable, "application")},
		SavedJob:    &SavedJobRepository{store: base(savedJobTable, "saved job")},
		Shortlist:   &ShortlistRepository{store: base(shortlistTable, "shortlist request")},
		User:        &UserRepository{store: base(userTable, "user")},
	}
}

// Schema describes the tables for the self-hosted record backends.
func Schema() record.Schema {
	return record.Schema{
		References: map[string]map[string]string{
			applicationTable: {"job_id_c": jobTable},
			savedJobTable:    {"job_id_c": jobTable},
			shortlistTable:   {"job_id_c": jobTable},
		},
		Unique: map[string][]string{
			savedJobTable: {"job_id_c"},
			userTable:     {"email_address_c"},
		},
	}
}

// store holds what every adapter shares: the client, the table and the
// failure handling around it.
type store struct {
	client record.Client
	log    *zap.SugaredLogger
	now    func() time.Time
	table  string
	entity string
}

// fetch returns the matching records, or nil after logging any failure.
func (s *store) fetch(ctx context.Context, q record.Query) []record.Record {
	resp, err := s.client.FetchRecords(ctx, s.table, q)
	if err != nil {
		s.log.Errorw("fetch records failed", "table", s.table, "err", err)
		return nil
	}
	if !resp.Success {
		s.log.Errorw("fetch records rejected", "table", s.table, "message", resp.Message)
		return nil
	}
	return resp.Data
}

// get returns one record, or nil when it is absent or the read failed.
func (s *store) get(ctx context.Context, id int64, q record.Query) *record.Record {
	resp, err := s.client.GetRecordByID(ctx, s.table, id, q)
	if err != nil {
		s.log.Errorw("get record failed", "table", s.table, "id", id, "err", err)
		return nil
	}
	if !resp.Success {
		s.log.Errorw("get record rejected", "table", s.table, "id", id, "message", resp.Message)
		return nil
	}
	if len(resp.Data) == 0 {
		return nil
	}
	return &resp.Data[0]
}

func (s *store) create(ctx context.Context, f record.Fields) (*record.Record, error) {
	resp, err := s.client.CreateRecord(ctx, s.table, []record.Fields{f})
	if err != nil {
		s.log.Errorw("create record failed", "table", s.table, "err", err)
		return nil, fmt.Errorf("create %s: %w", s.entity, err)
	}
	return s.first("create", resp, "Failed to create "+s.entity)
}

func (s *store) update(ctx context.Context, id int64, f record.Fields) (*record.Record, error) {
	f[record.IDField] = id
	resp, err := s.client.UpdateRecord(ctx, s.table, []record.Fields{f})
	if err != nil {
		s.log.Errorw("update record failed", "table", s.table, "id", id, "err", err)
		return nil, fmt.Errorf("update %s %d: %w", s.entity, id, err)
	}
	return s.first("update", resp, "Failed to update "+s.entity)
}

func (s *store) remove(ctx context.Context, id int64) error {
	resp, err := s.client.DeleteRecord(ctx, s.table, []int64{id})
	if err != nil {
		s.log.Errorw("delete record failed", "table", s.table, "id", id, "err", err)
		return fmt.Errorf("delete %s %d: %w", s.entity, id, err)
	}
	if !resp.Success {
		s.log.Errorw("delete record rejected", "table", s.table, "id", id, "message", resp.Message)
		return s.backendError("delete", resp.Message, "Failed to delete "+s.entity)
	}
	for _, r := range resp.Results {
		if !r.Success {
			s.log.Errorw("delete record rejected", "table", s.table, "id", id, "message", r.Message)
			return s.backendError("delete", r.Message, "Failed to delete "+s.entity)
		}
	}
	return nil
}

// first unwraps the single result of a one-record batch write.
func (s *store) first(op string, resp *record.Response, fallback string) (*record.Record, error) {
	if !resp.Success {
		s.log.Errorw(op+" record rejected", "table", s.table, "message", resp.Message)
		return nil, s.backendError(op, resp.Message, fallback)
	}
	if len(resp.Results) == 0 {
		s.log.Errorw(op+" record returned no results", "table", s.table)
		return nil, ErrNoResponseData
	}
	res := resp.Results[0]
	if !res.Success {
		s.log.Errorw(op+" record rejected", "table", s.table, "code", res.Code, "message", res.Message)
		return nil, s.backendError(op, res.Message, fallback)
	}
	if res.Data == nil {
		return nil, ErrNoResponseData
	}
	return res.Data, nil
}

func (s *store) backendError(op, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &record.BackendError{Op: op, Table: s.table, Message: message}
}

// parseTime reads a stored timestamp, falling back to now when the column
// is empty or unreadable.
func parseTime(v string, now time.Time) time.Time {
	if v == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return now
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
