package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/pkg/response"
)

type saveJobReq struct {
	JobID int64 `json:"jobId" binding:"required,min=1"`
}

func (h *Handler) ListSavedJobs(c *gin.Context) {
	response.List(c, h.Repo.SavedJob.GetAll(c.Request.Context()))
}

func (h *Handler) CreateSavedJob(c *gin.Context) {
	var req saveJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	saved, err := h.Repo.SavedJob.Create(c.Request.Context(), req.JobID)
	if err != nil {
		h.apiError(c, "save job", err)
		return
	}
	response.Created(c, saved)
}

func (h *Handler) DeleteSavedJob(c *gin.Context) {
	jobID, ok := idParam(c, "jobId")
	if !ok {
		response.BadRequest(c, "invalid job ID")
		return
	}
	if err := h.Repo.SavedJob.Delete(c.Request.Context(), jobID); err != nil {
		h.apiError(c, "unsave job", err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) SavedJobStatus(c *gin.Context) {
	jobID, ok := idParam(c, "jobId")
	if !ok {
		response.BadRequest(c, "invalid job ID")
		return
	}
	response.OK(c, gin.H{"jobId": jobID, "saved": h.Repo.SavedJob.IsJobSaved(c.Request.Context(), jobID)})
}
