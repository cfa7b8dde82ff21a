package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/pkg/model"
	"github.com/talentbridge/jobboard/pkg/response"
)

// ListApplications filters by ?status or ?jobId when given.
func (h *Handler) ListApplications(c *gin.Context) {
	ctx := c.Request.Context()
	if s := c.Query("status"); s != "" {
		status := model.ApplicationStatus(s)
		if !status.Valid() {
			response.BadRequest(c, "unknown application status")
			return
		}
		response.List(c, h.Repo.Application.GetByStatus(ctx, status))
		return
	}
	if j := c.Query("jobId"); j != "" {
		jobID, err := strconv.ParseInt(j, 10, 64)
		if err != nil || jobID < 1 {
			response.BadRequest(c, "invalid job ID")
			return
		}
		response.List(c, h.Repo.Application.GetByJobID(ctx, jobID))
		return
	}
	response.List(c, h.Repo.Application.GetAll(ctx))
}

func (h *Handler) ApplicationStats(c *gin.Context) {
	response.OK(c, h.Repo.Application.GetStatistics(c.Request.Context()))
}

// MyApplications lists the signed-in candidate's applications and stats.
func (h *Handler) MyApplications(c *gin.Context) {
	apps := h.Repo.Application.GetByEmail(c.Request.Context(), CurrentSession(c).Email())
	response.OK(c, gin.H{"applications": apps, "stats": repository.Statistics(apps)})
}

func (h *Handler) GetApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid application ID")
		return
	}
	app := h.Repo.Application.GetByID(c.Request.Context(), id)
	if app == nil {
		response.NotFound(c, "application not found")
		return
	}
	response.OK(c, app)
}

func (h *Handler) CreateApplication(c *gin.Context) {
	var req model.CreateApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("create application bad request", "err", err)
		response.ValidationError(c, err.Error())
		return
	}
	app, err := h.Repo.Application.Create(c.Request.Context(), req)
	if err != nil {
		h.apiError(c, "create application", err)
		return
	}
	response.Created(c, app)
}

func (h *Handler) PatchApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid application ID")
		return
	}
	var req model.PatchApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	app, err := h.Repo.Application.Update(c.Request.Context(), id, req)
	if err != nil {
		h.apiError(c, "update application", err)
		return
	}
	response.OK(c, app)
}

// WithdrawApplication lets a candidate withdraw one of their own applications.
func (h *Handler) WithdrawApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid application ID")
		return
	}
	ctx := c.Request.Context()
	existing := h.Repo.Application.GetByID(ctx, id)
	if existing == nil {
		response.NotFound(c, "application not found")
		return
	}
	if !strings.EqualFold(existing.Email, CurrentSession(c).Email()) {
		h.Logger.Sugar().Warnw("withdraw of another candidate's application", "id", id, "email", CurrentSession(c).Email())
		response.Forbidden(c, "you can only withdraw your own applications")
		return
	}
	app, err := h.Repo.Application.Withdraw(ctx, id)
	if err != nil {
		h.apiError(c, "withdraw application", err)
		return
	}
	response.OK(c, app)
}

func (h *Handler) ScheduleInterview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid application ID")
		return
	}
	var req model.InterviewDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	app, err := h.Repo.Application.UpdateInterview(c.Request.Context(), id, req)
	if err != nil {
		h.apiError(c, "update interview", err)
		return
	}
	response.OK(c, app)
}

func (h *Handler) AddFeedback(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid application ID")
		return
	}
	var req model.Feedback
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.GivenAt == nil {
		now := h.now().UTC()
		req.GivenAt = &now
	}
	app, err := h.Repo.Application.AddFeedback(c.Request.Context(), id, req)
	if err != nil {
		h.apiError(c, "add feedback", err)
		return
	}
	response.OK(c, app)
}

func (h *Handler) DeleteApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid application ID")
		return
	}
	if err := h.Repo.Application.Delete(c.Request.Context(), id); err != nil {
		h.apiError(c, "delete application", err)
		return
	}
	response.NoContent(c)
}
