package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/handler"
	"github.com/talentbridge/jobboard/internal/session"
	"github.com/talentbridge/jobboard/internal/view"
	"github.com/talentbridge/jobboard/pkg/response"
)

// requestLogger logs every request through zap.
func (app *application) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	}
}

// tokenFromRequest prefers a bearer header and falls back to the cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		fields := strings.Fields(header)
		if len(fields) == 2 && fields[0] == "Bearer" {
			return fields[1]
		}
		return ""
	}
	token, err := c.Cookie(handler.SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// LoadSession resolves the visitor's session. Requests without a valid
// token carry on anonymously; a cookie pointing at a dropped session is
// cleared.
func (app *application) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}
		sugar := app.Logger.Sugar()

		claims, err := app.Handler.TokenMaker.VerifyToken(token)
		if err != nil {
			sugar.Debugw("ignoring invalid token", "err", err)
			app.dropCookie(c)
			c.Next()
			return
		}

		sess, err := app.Sessions.Get(c.Request.Context(), claims.SessionID)
		switch {
		case errors.Is(err, session.ErrNotFound):
			app.dropCookie(c)
		case err != nil:
			sugar.Warnw("session lookup failed", "session_id", claims.SessionID, "err", err)
		default:
			handler.SetSession(c, sess)
		}
		c.Next()
	}
}

func (app *application) dropCookie(c *gin.Context) {
	if _, err := c.Cookie(handler.SessionCookie); err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(handler.SessionCookie, "", -1, "/", "", app.Config.Session.CookieSecure, true)
}

func RequireAPIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !handler.CurrentSession(c).Authenticated() {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePageAuth sends anonymous visitors to the login page and back.
func RequirePageAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !handler.CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, view.LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
