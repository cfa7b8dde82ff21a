package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/view"
)

var (
	jobTypes = []string{"full-time", "part-time", "contract"}
	levels   = []string{"entry-level", "mid-level", "senior-level"}
)

const featuredJobs = 6

type homePage struct {
	view.Page
	Featured    []view.JobCard
	ActiveCount int
}

func (h *Handler) Home(c *gin.Context) {
	jobs := view.FilterJobs(h.Repo.Job.GetAll(c.Request.Context()), view.JobFilter{})
	featured := jobs
	if len(featured) > featuredJobs {
		featured = featured[:featuredJobs]
	}
	c.HTML(http.StatusOK, "home", homePage{
		Page:        h.page(c, ""),
		Featured:    view.JobCards(featured, h.now()),
		ActiveCount: len(jobs),
	})
}

type jobsPage struct {
	view.Page
	Jobs     []view.JobCard
	Filter   view.JobFilter
	JobTypes []string
	Levels   []string
}

func (h *Handler) Jobs(c *gin.Context) {
	var f view.JobFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.Logger.Sugar().Warnw("jobs filter bad request", "err", err)
	}
	jobs := view.FilterJobs(h.Repo.Job.GetAll(c.Request.Context()), f)
	c.HTML(http.StatusOK, "jobs", jobsPage{
		Page:     h.page(c, "Browse Jobs"),
		Jobs:     view.JobCards(jobs, h.now()),
		Filter:   f,
		JobTypes: jobTypes,
		Levels:   levels,
	})
}

func (h *Handler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about", h.page(c, "About"))
}

func (h *Handler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", h.page(c, "Contact"))
}

// NotFound renders unknown routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "Not found", "Page not found", "/")
}
