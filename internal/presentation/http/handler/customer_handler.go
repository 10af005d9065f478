package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, customers)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, customer)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusCreated, customer)
}

// Update handles a partial customer update
func (h *CustomerHandler) Update(c *gin.Context) {
	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), req.ToInput(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, customer)
}

// Delete handles deleting a customer and answers with the removed record
func (h *CustomerHandler) Delete(c *gin.Context) {
	customer, err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, customer)
}

// Transactions handles listing the sales that reference a customer
func (h *CustomerHandler) Transactions(c *gin.Context) {
	txns, err := h.customerService.CustomerTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, txns)
}

// Export handles downloading every customer as CSV or XLSX
func (h *CustomerHandler) Export(c *gin.Context) {
	format, err := queryFormat(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	download(c, format, func(w io.Writer) (string, error) {
		return h.customerService.ExportCustomers(c.Request.Context(), w, format)
	})
}
