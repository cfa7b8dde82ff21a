package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/internal/auth"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/internal/session"
	"github.com/talentbridge/jobboard/internal/view"
	"github.com/talentbridge/jobboard/pkg"
	"github.com/talentbridge/jobboard/pkg/model"
)

var errInvalidCredentials = errors.New("invalid email or password")

type loginPage struct {
	view.Page
	Redirect  string
	Email     string
	FormError string
}

func (h *Handler) LoginPage(c *gin.Context) {
	redirect := view.SafeRedirect(c.Query("redirect"))
	if CurrentSession(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, redirect)
		return
	}
	c.HTML(http.StatusOK, "login", loginPage{Page: h.page(c, "Sign in"), Redirect: redirect})
}

func (h *Handler) renderLogin(c *gin.Context, status int, email, message string) {
	c.HTML(status, "login", loginPage{
		Page:      h.page(c, "Sign in"),
		Redirect:  view.SafeRedirect(c.PostForm("redirect")),
		Email:     email,
		FormError: message,
	})
}

// authenticate checks the credentials and returns the account.
func (h *Handler) authenticate(ctx context.Context, req model.LoginReq) (*model.User, error) {
	user, err := h.Repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.Logger.Sugar().Warnw("login password mismatch", "email", req.Email)
		return nil, errInvalidCredentials
	}
	return user, nil
}

// startSession issues an access token, records the session and sets the
// browser cookie.
func (h *Handler) startSession(c *gin.Context, user *model.User) (string, *auth.UserClaims, error) {
	token, claims, err := h.TokenMaker.CreateToken(user.ID, user.EmailAddress, user.FirstName, h.TokenTTL, "")
	if err != nil {
		return "", nil, err
	}
	err = h.Sessions.Save(c.Request.Context(), session.Session{
		ID: claims.SessionID,
		User: &session.User{
			ID:           user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			EmailAddress: user.EmailAddress,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if err != nil {
		return "", nil, err
	}
	h.setSessionCookie(c, token, int(h.TokenTTL.Seconds()))
	return token, claims, nil
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Sugar().Warnw("login bad request", "err", err)
		h.renderLogin(c, http.StatusBadRequest, req.Email, "Enter your email and password.")
		return
	}
	user, err := h.authenticate(c.Request.Context(), req)
	if errors.Is(err, errInvalidCredentials) {
		h.renderLogin(c, http.StatusUnauthorized, req.Email, "Invalid email or password.")
		return
	}
	if err != nil {
		h.Logger.Sugar().Errorw("login failed", "email", req.Email, "err", err)
		h.renderLogin(c, http.StatusBadGateway, req.Email, "Sign in is unavailable right now. Please try again.")
		return
	}
	if _, _, err := h.startSession(c, user); err != nil {
		h.Logger.Sugar().Errorw("start session failed", "err", err)
		h.renderLogin(c, http.StatusInternalServerError, req.Email, "Sign in is unavailable right now. Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, view.SafeRedirect(c.PostForm("redirect")))
}

// register creates the account with a bcrypt hash of the password.
func (h *Handler) register(ctx context.Context, req model.SignUpReq) (*model.User, error) {
	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	return h.Repo.User.Create(ctx, req.FirstName, req.LastName, req.Email, hash)
}

func (h *Handler) Signup(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Sugar().Warnw("signup bad request", "err", err)
		h.renderLogin(c, http.StatusBadRequest, req.Email, "Enter your name, a valid email and a password of at least 8 characters.")
		return
	}
	user, err := h.register(c.Request.Context(), req)
	if err != nil {
		status, message := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.Logger.Sugar().Errorw("signup failed", "email", req.Email, "err", err)
			message = "Sign up is unavailable right now. Please try again."
		}
		h.renderLogin(c, status, req.Email, message)
		return
	}
	if _, _, err := h.startSession(c, user); err != nil {
		h.Logger.Sugar().Errorw("start session failed", "err", err)
		h.renderLogin(c, http.StatusInternalServerError, req.Email, "Your account was created. Please sign in.")
		return
	}
	c.Redirect(http.StatusSeeOther, view.SafeRedirect(c.PostForm("redirect")))
}

// endSession drops the stored session and the cookie.
func (h *Handler) endSession(c *gin.Context) {
	if sess := CurrentSession(c); sess.ID != "" {
		if err := h.Sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			h.Logger.Sugar().Warnw("delete session failed", "session_id", sess.ID, "err", err)
		}
	}
	h.clearSessionCookie(c)
}

func (h *Handler) Logout(c *gin.Context) {
	h.endSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}
