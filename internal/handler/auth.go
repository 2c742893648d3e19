package handler

import (
	"log"
	"net/http"
	"net/url"

	"github.com/eventhub/backend/internal/model"
	"github.com/eventhub/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 600
)

type AuthHandler struct {
	svc         *service.AuthService
	google      *service.GoogleService
	frontendURL string
}

func NewAuthHandler(svc *service.AuthService, google *service.GoogleService, frontendURL string) *AuthHandler {
	return &AuthHandler{svc: svc, google: google, frontendURL: frontendURL}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Name, email and password"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Invalid request body."})
		return
	}

	_, token, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{
		Message: "User registered successfully.",
		Token:   token,
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Invalid request body."})
		return
	}

	_, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{
		Message: "Logged in successfully.",
		Token:   token,
	})
}

// GoogleLogin redirects the user agent to the Google consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	authURL, state, err := h.google.AuthCodeURL()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback completes the authorization-code flow. Success hands
// the session token to the frontend via redirect; any failure sends
// the user back to the login page.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || c.Query("state") != state {
		h.redirectToLogin(c)
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectToLogin(c)
		return
	}

	token, err := h.google.HandleCallback(c.Request.Context(), code)
	if err != nil {
		log.Printf("google login failed: %v", err)
		h.redirectToLogin(c)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect,
		h.frontendURL+"/auth/google?token="+url.QueryEscape(token))
}

func (h *AuthHandler) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login")
}
