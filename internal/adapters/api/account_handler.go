package api

import (
	"net/http"

	"catalogapi.app/internal/core/account"
	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/gin-gonic/gin"
)

// SignupRequest represents the HTTP request for creating an account
type SignupRequest struct {
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password" binding:"max=128"`
	Username string `json:"username" binding:"max=64"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"max=128"`
}

// UserResponse wraps the account returned by signup, login and authCheck
type UserResponse struct {
	Success bool          `json:"success"`
	User    *account.User `json:"user"`
	Message string        `json:"message,omitempty"`
}

// SuccessResponse represents a successful HTTP response
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *HTTPServerAdapter) bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err), ports.F("path", c.FullPath()))
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return false
	}
	return true
}

// signup handles POST /api/v1/account/signup requests
func (s *HTTPServerAdapter) signup(c *gin.Context) {
	var req SignupRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.accountUseCase.Signup(c.Request.Context(), account.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UserResponse{Success: true, User: user})
}

// login handles POST /api/v1/account/login requests
func (s *HTTPServerAdapter) login(c *gin.Context) {
	var req LoginRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.accountUseCase.Login(c.Request.Context(), account.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// logout handles POST /api/v1/account/logout requests
func (s *HTTPServerAdapter) logout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Logged out successfully"})
}

// verifyEmail handles POST /api/v1/account/verify-email requests
func (s *HTTPServerAdapter) verifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.accountUseCase.VerifyEmail(c.Request.Context(), account.VerifyEmailParams{Code: req.Code})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Success: true, User: user, Message: "Email verified successfully"})
}

// forgotPassword handles POST /api/v1/account/forgot-password requests
func (s *HTTPServerAdapter) forgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !s.bindJSON(c, &req) {
		return
	}

	if err := s.accountUseCase.ForgotPassword(c.Request.Context(), account.ForgotPasswordParams{Email: req.Email}); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Password reset link sent to your email"})
}

// resetPassword handles POST /api/v1/account/reset-password/:token requests
func (s *HTTPServerAdapter) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !s.bindJSON(c, &req) {
		return
	}

	err := s.accountUseCase.ResetPassword(c.Request.Context(), account.ResetPasswordParams{
		Token:    c.Param("token"),
		Password: req.Password,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Password reset successful"})
}

// authCheck handles GET /api/v1/account/authCheck requests
func (s *HTTPServerAdapter) authCheck(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

func (s *HTTPServerAdapter) setSessionCookie(c *gin.Context, userID string) error {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.config.CookieName, token, int(s.config.CookieTTL.Seconds()), "/", "", s.config.SecureCookies, true)
	return nil
}

func (s *HTTPServerAdapter) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.config.CookieName, "", -1, "/", "", s.config.SecureCookies, true)
}
