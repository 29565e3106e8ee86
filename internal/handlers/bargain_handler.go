package handlers

import (
	"net/http"

	"agroconnect/internal/models"
	"agroconnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BargainHandler struct {
	bargainService *services.BargainService
}

func NewBargainHandler(bargainService *services.BargainService) *BargainHandler {
	return &BargainHandler{bargainService: bargainService}
}

// CreateBargain opens a price negotiation on one of the farmer's listings
func (h *BargainHandler) CreateBargain(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBargainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bargain, err := h.bargainService.Create(actor, req.ListingID,
		decimal.NewFromFloat(req.ProposedPrice), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    bargain,
	})
}

// GetBargains returns bargains on the authenticated farmer's listings
func (h *BargainHandler) GetBargains(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bargains, err := h.bargainService.ListForFarmer(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bargains,
	})
}
