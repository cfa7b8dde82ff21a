package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/auth"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/internal/session"
	"github.com/talentbridge/jobboard/internal/view"
	"go.uber.org/zap"
)

// SessionCookie carries the access token for browser requests.
const SessionCookie = "tb_session"

const sessionKey = "session"

type Handler struct {
	Logger       *zap.Logger
	Repo         *repository.Repository
	TokenMaker   *auth.JWTMaker
	Sessions     session.Store
	TokenTTL     time.Duration
	CookieSecure bool
	Now          func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// SetSession stores the request's session for handlers further down.
func SetSession(c *gin.Context, sess session.Session) {
	c.Set(sessionKey, sess)
}

// CurrentSession returns the request's session; anonymous when none was set.
func CurrentSession(c *gin.Context) session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}
	}
	sess, _ := v.(session.Session)
	return sess
}

func (h *Handler) page(c *gin.Context, title string) view.Page {
	return view.NewPage(title, c.Request.URL.Path, CurrentSession(c))
}

// renderError shows the error page with a "Try again" link to retry, or
// to the current URL when retry is empty.
func (h *Handler) renderError(c *gin.Context, status int, title, message, retry string) {
	p := h.page(c, title).Fail(message)
	if retry == "" {
		retry = c.Request.URL.RequestURI()
	}
	p.RetryURL = retry
	c.HTML(status, "error", p)
}

// formRedirect honours a same-site "redirect" form value, else fallback.
func formRedirect(c *gin.Context, fallback string) string {
	if r := c.PostForm("redirect"); r != "" {
		return view.SafeRedirect(r)
	}
	return fallback
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", h.CookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
}
