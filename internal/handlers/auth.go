package handlers

import (
	"log"
	"net/http"

	"agroconnect/internal/auth"
	"agroconnect/internal/models"
	"agroconnect/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterFarmer registers a farmer account and logs it in
func (h *AuthHandler) RegisterFarmer(c *gin.Context) {
	var req models.RegisterFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.RegisterFarmer(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("New farmer registered: %s", user.Username)
	h.respondWithToken(c, http.StatusCreated, user)
}

// RegisterCompany registers a company account and logs it in
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req models.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.RegisterCompany(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("New company registered: %s - %s", user.Username, req.CompanyName)
	h.respondWithToken(c, http.StatusCreated, user)
}

// Login authenticates a user and issues a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(status, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}
