package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/response"
)

// TransactionHandler handles sales and restocks
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing transactions in recorded order
func (h *TransactionHandler) List(c *gin.Context) {
	txns, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, txns)
}

// Create handles recording a sale or restock
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusCreated, txn)
}
