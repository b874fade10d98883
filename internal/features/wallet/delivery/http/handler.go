package http

import (
	"errors"
	"net/http"

	"meetup-escrow-backend/internal/common/middleware"
	"meetup-escrow-backend/internal/features/wallet/models"
	walletservice "meetup-escrow-backend/internal/features/wallet/service"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	service walletservice.WalletService
}

func NewWalletHandler(service walletservice.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	wallet := router.Group("/wallet")
	{
		wallet.POST("", h.link)
		wallet.GET("", h.get)
	}
}

func (h *WalletHandler) link(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input models.LinkRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.service.Link(c.Request.Context(), userID, input.Address)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *WalletHandler) get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	link, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotLinked) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, link)
}
