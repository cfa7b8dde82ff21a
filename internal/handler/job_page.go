package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/internal/view"
	"github.com/talentbridge/jobboard/pkg/model"
	"golang.org/x/sync/errgroup"
)

type jobDetailPage struct {
	view.Page
	Detail view.JobDetail
}

func jobPath(id int64) string {
	return "/jobs/" + strconv.FormatInt(id, 10)
}

// JobDetail loads the job together with the visitor's applied and saved
// state.
func (h *Handler) JobDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.renderError(c, http.StatusNotFound, "Job not found", "Job not found", "")
		return
	}
	sess := CurrentSession(c)

	var (
		job     *model.Job
		applied bool
		saved   bool
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		job = h.Repo.Job.GetByID(ctx, id)
		return ctx.Err()
	})
	g.Go(func() error {
		applied = h.Repo.Application.HasApplied(ctx, id, sess.Email())
		return ctx.Err()
	})
	g.Go(func() error {
		saved = h.Repo.SavedJob.IsJobSaved(ctx, id)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		h.Logger.Sugar().Warnw("load job detail failed", "id", id, "err", err)
		h.renderError(c, http.StatusServiceUnavailable, "Job", "Failed to load job details. Please try again.", "")
		return
	}
	if job == nil {
		h.renderError(c, http.StatusNotFound, "Job not found", "Job not found", "")
		return
	}

	c.HTML(http.StatusOK, "job_detail", jobDetailPage{
		Page:   h.page(c, job.Title),
		Detail: view.NewJobDetail(*job, sess, jobPath(id), applied, saved, h.now()),
	})
}

type applyForm struct {
	CandidateName string `form:"candidateName" binding:"required,max=200"`
	Email         string `form:"email" binding:"omitempty,email"`
	Phone         string `form:"phone"`
	ResumeURL     string `form:"resumeUrl" binding:"omitempty,url"`
	CoverLetter   string `form:"coverLetter"`
}

// Apply submits an application for the signed-in candidate. Anonymous
// visitors are sent to the login page and back.
func (h *Handler) Apply(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.renderError(c, http.StatusNotFound, "Job not found", "Job not found", "/jobs")
		return
	}
	back := jobPath(id)
	sess := CurrentSession(c)
	if !sess.Authenticated() {
		c.Redirect(http.StatusSeeOther, view.LoginURL(back))
		return
	}

	var form applyForm
	if err := c.ShouldBind(&form); err != nil {
		h.Logger.Sugar().Warnw("apply bad request", "job_id", id, "err", err)
		h.renderError(c, http.StatusBadRequest, "Apply", "Please provide your name and a valid email address.", back)
		return
	}
	email := form.Email
	if email == "" {
		email = sess.Email()
	}

	ctx := c.Request.Context()
	if h.Repo.Job.GetByID(ctx, id) == nil {
		h.renderError(c, http.StatusNotFound, "Job not found", "Job not found", "/jobs")
		return
	}
	if h.Repo.Application.HasApplied(ctx, id, email) {
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	_, err := h.Repo.Application.Create(ctx, model.CreateApplicationReq{
		CandidateName: form.CandidateName,
		Email:         email,
		Phone:         form.Phone,
		CoverLetter:   form.CoverLetter,
		ResumeURL:     form.ResumeURL,
		JobID:         id,
	})
	if err != nil {
		status, message := statusFor(err)
		h.Logger.Sugar().Errorw("apply failed", "job_id", id, "err", err)
		h.renderError(c, status, "Apply", message, back)
		return
	}
	c.Redirect(http.StatusSeeOther, back)
}

func (h *Handler) SaveJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.renderError(c, http.StatusNotFound, "Job not found", "Job not found", "/jobs")
		return
	}
	if _, err := h.Repo.SavedJob.Create(c.Request.Context(), id); err != nil && !errors.Is(err, repository.ErrJobAlreadySaved) {
		status, message := statusFor(err)
		h.renderError(c, status, "Save job", message, jobPath(id))
		return
	}
	c.Redirect(http.StatusSeeOther, formRedirect(c, jobPath(id)))
}

func (h *Handler) UnsaveJob(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.renderError(c, http.StatusNotFound, "Job not found", "Job not found", "/jobs")
		return
	}
	if err := h.Repo.SavedJob.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, repository.ErrSavedJobNotFound) {
		status, message := statusFor(err)
		h.renderError(c, status, "Unsave job", message, jobPath(id))
		return
	}
	c.Redirect(http.StatusSeeOther, formRedirect(c, jobPath(id)))
}
