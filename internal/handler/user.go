package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/pkg/model"
	"github.com/talentbridge/jobboard/pkg/response"
)

func userRes(u *model.User) model.UserRes {
	return model.UserRes{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, EmailAddress: u.EmailAddress}
}

// SignUpAPI creates an account; the client signs in separately.
func (h *Handler) SignUpAPI(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("signup bad request", "err", err)
		response.ValidationError(c, err.Error())
		return
	}
	user, err := h.register(c.Request.Context(), req)
	if err != nil {
		h.apiError(c, "signup", err)
		return
	}
	response.Created(c, userRes(user))
}

// LoginAPI returns a bearer token for API clients and sets the cookie too.
func (h *Handler) LoginAPI(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("login bad request", "err", err)
		response.ValidationError(c, err.Error())
		return
	}
	user, err := h.authenticate(c.Request.Context(), req)
	if errors.Is(err, errInvalidCredentials) {
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err != nil {
		h.apiError(c, "login", err)
		return
	}
	token, claims, err := h.startSession(c, user)
	if err != nil {
		h.Logger.Sugar().Errorw("start session failed", "err", err)
		response.InternalError(c, "could not create session")
		return
	}
	response.OK(c, model.LoginUserRes{
		SessionID:            claims.SessionID,
		AccessToken:          token,
		AccessTokenExpiresAt: claims.ExpiresAt.Time,
		User:                 userRes(user),
	})
}

func (h *Handler) LogoutAPI(c *gin.Context) {
	h.endSession(c)
	response.Message(c, "user logged out successfully")
}

// Me returns the signed-in user.
func (h *Handler) Me(c *gin.Context) {
	sess := CurrentSession(c)
	if !sess.Authenticated() {
		response.Unauthorized(c, "")
		return
	}
	user, err := h.Repo.User.GetByID(c.Request.Context(), sess.User.ID)
	if err != nil {
		h.apiError(c, "me", err)
		return
	}
	response.OK(c, userRes(user))
}
