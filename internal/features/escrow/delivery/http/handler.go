package http

import (
	"errors"
	"net/http"

	"meetup-escrow-backend/internal/common/middleware"
	"meetup-escrow-backend/internal/features/escrow/models"
	escrowservice "meetup-escrow-backend/internal/features/escrow/service"
	walletmodels "meetup-escrow-backend/internal/features/wallet/models"
	walletservice "meetup-escrow-backend/internal/features/wallet/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EscrowHandler struct {
	service escrowservice.EscrowService
	wallets walletservice.WalletService
}

func NewEscrowHandler(service escrowservice.EscrowService, wallets walletservice.WalletService) *EscrowHandler {
	return &EscrowHandler{service: service, wallets: wallets}
}

func (h *EscrowHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/contracts")
	{
		contracts.POST("", h.create)
		contracts.GET("/:id", h.getByID)
		contracts.POST("/:id/deposit", h.deposit)
		contracts.POST("/:id/distribute", h.distribute)
	}
}

func (h *EscrowHandler) create(c *gin.Context) {
	var input models.ContractCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoker, ok := h.invokerWallet(c)
	if !ok {
		return
	}

	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	if input.Admin == "" {
		input.Admin = invoker
	}

	resp, err := h.service.Initialize(c.Request.Context(), input.ID, &input)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EscrowHandler) getByID(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EscrowHandler) deposit(c *gin.Context) {
	var input models.DepositRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoker, ok := h.invokerWallet(c)
	if !ok {
		return
	}

	pool, err := h.service.Deposit(c.Request.Context(), c.Param("id"), invoker, &input)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pool)
}

func (h *EscrowHandler) distribute(c *gin.Context) {
	invoker, ok := h.invokerWallet(c)
	if !ok {
		return
	}

	result, err := h.service.Distribute(c.Request.Context(), c.Param("id"), invoker)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// invokerWallet resolves the authenticated Telegram user to their linked
// wallet address. It writes the error response itself when resolution fails.
func (h *EscrowHandler) invokerWallet(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}

	addr, err := h.wallets.Resolve(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, walletmodels.ErrNotLinked) {
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "link a wallet before using escrow operations"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return "", false
	}
	return addr, true
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTransferFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
