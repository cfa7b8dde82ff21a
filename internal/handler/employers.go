package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/view"
	"github.com/talentbridge/jobboard/pkg/model"
)

type employersPage struct {
	view.Page
	Jobs     []model.Job
	Requests []model.ShortlistRequest
}

// employerID keys shortlist requests by the signed-in account.
func employerID(c *gin.Context) string {
	sess := CurrentSession(c)
	if !sess.Authenticated() {
		return ""
	}
	return strconv.FormatInt(sess.User.ID, 10)
}

func (h *Handler) Employers(c *gin.Context) {
	ctx := c.Request.Context()
	p := employersPage{
		Page: h.page(c, "For Employers"),
		Jobs: view.FilterJobs(h.Repo.Job.GetAll(ctx), view.JobFilter{}),
	}
	if id := employerID(c); id != "" {
		p.Requests = h.Repo.Shortlist.GetByEmployerID(ctx, id)
	}
	switch {
	case c.Query("requested") == "1":
		p.Flash = "Shortlist request sent. We will be in touch soon."
	case c.Query("posted") == "1":
		p.Flash = "Your job is live."
	}
	c.HTML(http.StatusOK, "employers", p)
}

func (h *Handler) RequestShortlist(c *gin.Context) {
	var req model.CreateShortlistReq
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Sugar().Warnw("shortlist bad request", "err", err)
		h.renderError(c, http.StatusBadRequest, "For Employers", "Please describe your criteria and how many candidates you need.", "/employers")
		return
	}
	req.EmployerID = employerID(c)
	if _, err := h.Repo.Shortlist.Create(c.Request.Context(), req); err != nil {
		status, message := statusFor(err)
		h.Logger.Sugar().Errorw("shortlist create failed", "err", err)
		h.renderError(c, status, "For Employers", message, "/employers")
		return
	}
	c.Redirect(http.StatusSeeOther, "/employers?requested=1")
}

type postJobPage struct {
	view.Page
	Form      model.CreateJobReq
	FormError string
	JobTypes  []string
	Levels    []string
}

func (h *Handler) newPostJobPage(c *gin.Context, form model.CreateJobReq) postJobPage {
	return postJobPage{
		Page:     h.page(c, "Post a Job"),
		Form:     form,
		JobTypes: jobTypes,
		Levels:   levels,
	}
}

func (h *Handler) PostJobForm(c *gin.Context) {
	c.HTML(http.StatusOK, "post_job", h.newPostJobPage(c, model.CreateJobReq{}))
}

// PostJob publishes a job and re-renders the form with the entered values
// when anything goes wrong.
func (h *Handler) PostJob(c *gin.Context) {
	var form model.CreateJobReq
	if err := c.ShouldBind(&form); err != nil {
		h.Logger.Sugar().Warnw("post job bad request", "err", err)
		p := h.newPostJobPage(c, form)
		p.FormError = "Title and company are required."
		c.HTML(http.StatusBadRequest, "post_job", p)
		return
	}
	form.Status = model.JobStatusActive
	job, err := h.Repo.Job.Create(c.Request.Context(), form)
	if err != nil {
		status, message := statusFor(err)
		h.Logger.Sugar().Errorw("post job failed", "err", err)
		p := h.newPostJobPage(c, form)
		p.FormError = message
		c.HTML(status, "post_job", p)
		return
	}
	c.Redirect(http.StatusSeeOther, jobPath(job.ID))
}
