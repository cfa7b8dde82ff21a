package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserClaims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func NewUserClaims(userID int64, email, firstName string, duration time.Duration, sessionID string) (*UserClaims, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("error generating token iD: %w", err)
	}

	finalSessionID := sessionID
	if finalSessionID == "" {
		finalSessionID = tokenID.String()
	}

	now := time.Now()
	return &UserClaims{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		SessionID: finalSessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}, nil
}
