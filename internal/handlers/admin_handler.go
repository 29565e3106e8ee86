package handlers

import (
	"net/http"
	"strconv"

	"agroconnect/internal/models"
	"agroconnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	adminService   *services.AdminService
	orderService   *services.OrderService
	listingService *services.ListingService
	bargainService *services.BargainService
}

func NewAdminHandler(adminService *services.AdminService, orderService *services.OrderService,
	listingService *services.ListingService, bargainService *services.BargainService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		orderService:   orderService,
		listingService: listingService,
		bargainService: bargainService,
	}
}

// AdminMiddleware checks that the caller holds the admin role
func (h *AdminHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if actor.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetDashboard returns platform counts and recent activity
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboard()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetOrders returns all orders, optionally filtered by status
func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListAll(models.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AdvanceOrder applies an admin action (send_to_farmer, final_approve,
// reject, complete) to an order
func (h *AdminHandler) AdvanceOrder(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req models.AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.Advance(actor, uint(orderID),
		models.OrderAction(req.Action), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderSummary returns per-status counts and order values
func (h *AdminHandler) GetOrderSummary(c *gin.Context) {
	summary, err := h.adminService.GetOrderSummary()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// GetListings returns all listings with filters and aggregate totals
func (h *AdminHandler) GetListings(c *gin.Context) {
	overview, err := h.adminService.GetListingOverview(
		models.CropType(c.Query("crop_type")),
		models.ListingStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    overview,
	})
}

// SetListingPrice sets the admin price per ton on a listing
func (h *AdminHandler) SetListingPrice(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	var req models.SetListingPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingService.SetAdminPrice(uint(listingID),
		decimal.NewFromFloat(req.PricePerTon))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listing,
	})
}

// GetBargains returns all bargains, optionally filtered by status
func (h *AdminHandler) GetBargains(c *gin.Context) {
	bargains, err := h.bargainService.ListAll(models.BargainStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bargains,
	})
}

// RespondToBargain applies the admin's accept/reject/counter response
func (h *AdminHandler) RespondToBargain(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bargainID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bargain ID"})
		return
	}

	var req models.RespondBargainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var counterPrice *decimal.Decimal
	if req.CounterPrice != nil {
		price := decimal.NewFromFloat(*req.CounterPrice)
		counterPrice = &price
	}

	bargain, err := h.bargainService.Respond(actor, uint(bargainID),
		models.BargainAction(req.Action), counterPrice, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bargain,
	})
}
