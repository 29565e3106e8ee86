package handlers

import (
	"net/http"
	"strconv"

	"agroconnect/internal/models"
	"agroconnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// CreateListing lists crop residue for the authenticated farmer
func (h *ListingHandler) CreateListing(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if actor.Role != models.RoleFarmer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only farmers can create listings"})
		return
	}

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingService.Create(actor.UserID, models.CropType(req.CropType),
		decimal.NewFromFloat(req.Quantity), req.Location, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    listing,
	})
}

// GetListings returns available listings, optionally filtered by crop type.
// Farmers get their own listings when "mine=true" is passed.
func (h *ListingHandler) GetListings(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if c.Query("mine") == "true" && actor.Role == models.RoleFarmer {
		listings, err := h.listingService.ListForFarmer(actor.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": listings})
		return
	}

	listings, err := h.listingService.ListAvailable(models.CropType(c.Query("crop_type")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listings,
	})
}

// GetListing returns one listing with its effective price and total value
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	listing, err := h.listingService.Get(uint(listingID))
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{"listing": listing}
	if price, err := services.EffectivePrice(listing); err == nil {
		data["effective_price"] = price
	}
	if value, err := services.ListingValue(listing); err == nil {
		data["total_value"] = value
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetMarketPrices returns the current admin price per crop type
func (h *ListingHandler) GetMarketPrices(c *gin.Context) {
	prices, err := h.listingService.MarketPrices()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    prices,
	})
}
