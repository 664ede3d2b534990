package httpapi

import (
	"net/http"

	"github.com/chenterphai/article-stack/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=20"`
	Email    string `json:"email" binding:"required,email,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new identity and signs it in.
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failResponse("BAD_REQUEST", "Invalid registration input."))
		return
	}

	user, pair, err := s.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.logger.Error(c.Request.Context(), "registration failed", "error", err.Error())
		c.JSON(errorResponse(err))
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, okResponse("User registered successfully.", &AuthContent{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Data:         userData(user),
	}))
}

// Login verifies credentials and replaces any previously active session.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failResponse("BAD_REQUEST", "Invalid login input."))
		return
	}

	user, pair, err := s.auth.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(errorResponse(err))
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, okResponse("User logged in successfully.", &AuthContent{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Data:         userData(user),
	}))
}

// Refresh rotates the refresh token presented via the httpOnly cookie or,
// failing that, the request body.
func (s *Server) Refresh(c *gin.Context) {
	token, err := c.Cookie(common.RefreshTokenCookieName)
	if err != nil || token == "" {
		var req refreshRequest
		// Body is optional; an empty token is rejected by the service.
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	pair, err := s.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		s.logger.Error(c.Request.Context(), "refresh failed", "error", err.Error())
		c.JSON(errorResponse(err))
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, okResponse("Tokens refreshed successfully.", &AuthContent{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}))
}

// Logout revokes the caller's active session and clears the refresh cookie.
func (s *Server) Logout(c *gin.Context) {
	userID := c.GetString(ctxUserIDKey)

	if err := s.auth.Logout(c.Request.Context(), userID); err != nil {
		s.logger.Error(c.Request.Context(), "logout failed", "error", err.Error())
		c.JSON(errorResponse(err))
		return
	}

	s.clearRefreshCookie(c)
	c.JSON(http.StatusOK, okResponse("User logged out successfully.", nil))
}

// Me returns the identity asserted by the access token.
func (s *Server) Me(c *gin.Context) {
	userID := c.GetString(ctxUserIDKey)

	user, err := s.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, okResponse("OK", &AuthContent{Data: userData(user)}))
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.RefreshTokenCookieName, token,
		int(s.refreshTokenValidity.Seconds()), "/api/auth", "", false, true)
}

func (s *Server) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.RefreshTokenCookieName, "", -1, "/api/auth", "", false, true)
}
