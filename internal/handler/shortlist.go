package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/pkg/model"
	"github.com/talentbridge/jobboard/pkg/response"
)

// ListShortlists narrows to one employer with ?employerId.
func (h *Handler) ListShortlists(c *gin.Context) {
	ctx := c.Request.Context()
	if id := c.Query("employerId"); id != "" {
		response.List(c, h.Repo.Shortlist.GetByEmployerID(ctx, id))
		return
	}
	response.List(c, h.Repo.Shortlist.GetAll(ctx))
}

func (h *Handler) GetShortlist(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid shortlist request ID")
		return
	}
	req := h.Repo.Shortlist.GetByID(c.Request.Context(), id)
	if req == nil {
		response.NotFound(c, "shortlist request not found")
		return
	}
	response.OK(c, req)
}

func (h *Handler) CreateShortlist(c *gin.Context) {
	var req model.CreateShortlistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.EmployerID == "" {
		req.EmployerID = employerID(c)
	}
	created, err := h.Repo.Shortlist.Create(c.Request.Context(), req)
	if err != nil {
		h.apiError(c, "create shortlist request", err)
		return
	}
	response.Created(c, created)
}

func (h *Handler) PatchShortlist(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid shortlist request ID")
		return
	}
	var req model.PatchShortlistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	updated, err := h.Repo.Shortlist.Update(c.Request.Context(), id, req)
	if err != nil {
		h.apiError(c, "update shortlist request", err)
		return
	}
	response.OK(c, updated)
}

func (h *Handler) DeleteShortlist(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid shortlist request ID")
		return
	}
	if err := h.Repo.Shortlist.Delete(c.Request.Context(), id); err != nil {
		h.apiError(c, "delete shortlist request", err)
		return
	}
	response.NoContent(c)
}
