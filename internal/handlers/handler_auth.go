package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/dealflow/internal/apperrors"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the routes for authentication.
// tokenLimit guards the password grant; authMW protects the session routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, authMW, tokenLimit gin.HandlerFunc) {
	h := newAuthHandler(services.User, services.TokenService)

	auth := r.Group("/auth")
	{
		auth.POST("/token", tokenLimit, h.issueToken)
		auth.POST("/register", h.register)
		auth.GET("/me", authMW, h.me)
		auth.POST("/logout", authMW, h.logout)
	}

	if services.GoogleOAuthHandler != nil {
		registerGoogleOAuthRoutes(auth, services)
	}
}

// issueToken godoc
// @Summary Exchange credentials for an access token
// @Description Password grant. Credentials are sent form-encoded as username (the email) and password.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Rejected login attempt")
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Incorrect username or password"})
			return
		}
		respondWithError(c, err, "User not found", "authenticate user")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err, "User not found", "generate token")
		return
	}

	logger.Info("Access token issued", slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.NewBearerTokenResponse(token))
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account. Role defaults to analyst.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Email already registered")
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Email already registered"})
			return
		}
		respondWithError(c, err, "User not found", "register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// me godoc
// @Summary Current user
// @Description Resolves the bearer token to the user profile.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// logout godoc
// @Summary Revoke the presented access token
// @Description The token is denied until it would have expired. Without a deny list configured this is a no-op.
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	claims, ok := middleware.GetTokenClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.tokenService.RevokeAccessToken(c.Request.Context(), claims); err != nil {
		respondWithError(c, err, "Token not found", "revoke token")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Access token revoked")
	c.Status(http.StatusNoContent)
}
