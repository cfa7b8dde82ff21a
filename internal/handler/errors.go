package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/pkg"
	"github.com/talentbridge/jobboard/pkg/response"
)

// statusFor maps adapter errors onto HTTP statuses and client-safe messages.
func statusFor(err error) (int, string) {
	var be *record.BackendError
	switch {
	case errors.Is(err, repository.ErrJobAlreadySaved), errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, pkg.ErrPasswordTooLong), errors.Is(err, pkg.ErrPasswordBlank):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrSavedJobNotFound), errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &be):
		return http.StatusBadGateway, be.Message
	case errors.Is(err, repository.ErrNoResponseData):
		return http.StatusBadGateway, err.Error()
	}
	return http.StatusBadGateway, "record store unavailable"
}

// apiError logs err and writes it in the response envelope.
func (h *Handler) apiError(c *gin.Context, action string, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Sugar().Errorw(action+" failed", "path", c.Request.URL.Path, "err", err)
	} else {
		h.Logger.Sugar().Warnw(action+" rejected", "path", c.Request.URL.Path, "err", err)
	}
	switch status {
	case http.StatusConflict:
		response.Conflict(c, message)
	case http.StatusNotFound:
		response.NotFound(c, message)
	case http.StatusBadRequest:
		response.BadRequest(c, message)
	default:
		response.BadGateway(c, message)
	}
}
