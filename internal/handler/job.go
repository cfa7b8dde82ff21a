package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/pkg/model"
	"github.com/talentbridge/jobboard/pkg/response"
)

func (h *Handler) ListJobs(c *gin.Context) {
	response.List(c, h.Repo.Job.GetAll(c.Request.Context()))
}

func (h *Handler) GetJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid job ID")
		return
	}
	job := h.Repo.Job.GetByID(c.Request.Context(), id)
	if job == nil {
		response.NotFound(c, "job not found")
		return
	}
	response.OK(c, job)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req model.CreateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("create job bad request", "err", err)
		response.ValidationError(c, err.Error())
		return
	}
	job, err := h.Repo.Job.Create(c.Request.Context(), req)
	if err != nil {
		h.apiError(c, "create job", err)
		return
	}
	response.Created(c, job)
}

func (h *Handler) PatchJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid job ID")
		return
	}
	var req model.PatchJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	job, err := h.Repo.Job.Update(c.Request.Context(), id, req)
	if err != nil {
		h.apiError(c, "update job", err)
		return
	}
	response.OK(c, job)
}

func (h *Handler) DeleteJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid job ID")
		return
	}
	if err := h.Repo.Job.Delete(c.Request.Context(), id); err != nil {
		h.apiError(c, "delete job", err)
		return
	}
	response.NoContent(c)
}
