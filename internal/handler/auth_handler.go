package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terptickets/internal/forms"
	"terptickets/internal/middleware"
	"terptickets/internal/port"
	"terptickets/internal/service"
)

// Destinations signalled to the client after a successful submission.
const (
	signUpRedirect = "/login"
	loginRedirect  = "/"
)

// AuthHandler handles registration, login, and session endpoints.
type AuthHandler struct {
	identity port.Identity
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity port.Identity) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type signUpRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verifyPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /api/v1/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub := service.NewSignUpSubmission(h.identity, signUpRedirect)
	draft := sub.Draft()
	draft.Set(forms.FieldEmail, req.Email)
	draft.Set(forms.FieldPassword, req.Password)
	draft.Set(forms.FieldVerifyPassword, req.VerifyPassword)

	outcome, err := sub.Submit(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	switch outcome.Kind {
	case service.OutcomeInvalid:
		RespondInvalid(c, outcome.FieldErrors)
	case service.OutcomeFailed:
		RespondFailed(c, outcome)
	default:
		RespondCreated(c, gin.H{"session": outcome.Session, "redirect": outcome.Redirect})
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sub := service.NewLoginSubmission(h.identity, loginRedirect)
	draft := sub.Draft()
	draft.Set(forms.FieldEmail, req.Email)
	draft.Set(forms.FieldPassword, req.Password)

	outcome, err := sub.Submit(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	switch outcome.Kind {
	case service.OutcomeInvalid:
		RespondInvalid(c, outcome.FieldErrors)
	case service.OutcomeFailed:
		RespondFailed(c, outcome)
	default:
		RespondOK(c, gin.H{"session": outcome.Session, "redirect": outcome.Redirect})
	}
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, user)
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, err := middleware.GetToken(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.identity.SignOut(c.Request.Context(), token); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "signed out"})
}
