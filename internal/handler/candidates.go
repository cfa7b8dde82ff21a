package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/internal/view"
	"github.com/talentbridge/jobboard/pkg/model"
	"golang.org/x/sync/errgroup"
)

type candidatesPage struct {
	view.Page
	Dashboard view.Dashboard
}

// Candidates is the signed-in candidate's dashboard: their applications,
// the saved jobs and the status breakdown.
func (h *Handler) Candidates(c *gin.Context) {
	sess := CurrentSession(c)

	var (
		apps  []model.Application
		saved []model.SavedJob
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		apps = h.Repo.Application.GetByEmail(ctx, sess.Email())
		return ctx.Err()
	})
	g.Go(func() error {
		saved = h.Repo.SavedJob.GetAll(ctx)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		h.Logger.Sugar().Warnw("load dashboard failed", "err", err)
		h.renderError(c, http.StatusServiceUnavailable, "My Dashboard", "Failed to load your dashboard. Please try again.", "")
		return
	}

	c.HTML(http.StatusOK, "candidates", candidatesPage{
		Page:      h.page(c, "My Dashboard"),
		Dashboard: view.NewDashboard(apps, saved, repository.Statistics(apps), h.now()),
	})
}

// WithdrawOwnApplication withdraws one of the signed-in candidate's own
// applications.
func (h *Handler) WithdrawOwnApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.renderError(c, http.StatusNotFound, "My Dashboard", "Application not found", "/candidates")
		return
	}
	ctx := c.Request.Context()
	app := h.Repo.Application.GetByID(ctx, id)
	if app == nil || !strings.EqualFold(app.Email, CurrentSession(c).Email()) {
		h.renderError(c, http.StatusNotFound, "My Dashboard", "Application not found", "/candidates")
		return
	}
	if _, err := h.Repo.Application.Withdraw(ctx, id); err != nil {
		status, message := statusFor(err)
		h.Logger.Sugar().Errorw("withdraw failed", "id", id, "err", err)
		h.renderError(c, status, "My Dashboard", message, "/candidates")
		return
	}
	c.Redirect(http.StatusSeeOther, "/candidates")
}
