package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/pkg/model"
)

var userFields = []record.Field{
	record.Col("Id"),
	record.Col("Name"),
	record.Col("first_name_c"),
	record.Col("last_name_c"),
	record.Col("email_address_c"),
	record.Col("password_hash_c"),
}

// UserRepository adapts user_c records. Emails are stored lowercased.
type UserRepository struct {
	store
}

// Create inserts a new user. An address that is already registered yields
// ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := r.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" {
		name = email
	}
	resp, err := r.client.CreateRecord(ctx, r.table, []record.Fields{record.Fields{
		"Name":            name,
		"first_name_c":    firstName,
		"last_name_c":     lastName,
		"email_address_c": email,
		"password_hash_c": passwordHash,
	}.Compact()})
	if err != nil {
		r.log.Errorw("create record failed", "table", r.table, "err", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if len(resp.Results) > 0 && resp.Results[0].Code == record.CodeDuplicate {
		return nil, ErrEmailTaken
	}
	rec, err := r.first("create", resp, "Failed to create user")
	if err != nil {
		return nil, err
	}
	u := userFromRecord(*rec)
	return &u, nil
}

// GetByEmail returns ErrUserNotFound when no account uses the address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	resp, err := r.client.FetchRecords(ctx, r.table, record.Query{
		Fields: userFields,
		Where:  []record.Condition{record.Eq("email_address_c", strings.ToLower(strings.TrimSpace(email)))},
	})
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if !resp.Success {
		return nil, r.backendError("fetch", resp.Message, "Failed to fetch user")
	}
	if len(resp.Data) == 0 {
		return nil, ErrUserNotFound
	}
	u := userFromRecord(resp.Data[0])
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	resp, err := r.client.GetRecordByID(ctx, r.table, id, record.Query{Fields: userFields})
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if !resp.Success {
		return nil, r.backendError("get", resp.Message, "Failed to fetch user")
	}
	if len(resp.Data) == 0 {
		return nil, ErrUserNotFound
	}
	u := userFromRecord(resp.Data[0])
	return &u, nil
}

func userFromRecord(rec record.Record) model.User {
	return model.User{
		ID:           rec.ID,
		FirstName:    rec.String("first_name_c"),
		LastName:     rec.String("last_name_c"),
		EmailAddress: rec.String("email_address_c"),
		PasswordHash: rec.String("password_hash_c"),
	}
}
