package controllers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/services"
)

type AuthController struct {
	sessions *services.SessionService
}

func NewAuthController(sessions *services.SessionService) *AuthController {
	return &AuthController{sessions: sessions}
}

// Struct to represent the login request body
type LoginRequest struct {
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Struct for user registration
type RegisterRequest struct {
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the role-specific endpoint and establishes
// the session.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}

	principal, err := ac.sessions.Login(c.Request.Context(), req.Role, req.Email, req.Password)
	if err != nil {
		var authErr *services.AuthError
		if stderrors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"user":    principal,
	})
}

// Register creates an account; the caller logs in afterwards.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}

	if err := ac.sessions.Signup(c.Request.Context(), req.Role, req.Name, req.Email, req.Password); err != nil {
		var authErr *services.AuthError
		if stderrors.As(err, &authErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

// Logout clears the session; it succeeds even when no session exists.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessions.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Status reports the current session state.
func (ac *AuthController) Status(c *gin.Context) {
	principal, ok := ac.sessions.Current()
	if !ok || !ac.sessions.IsAuthenticated() {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          principal,
	})
}
