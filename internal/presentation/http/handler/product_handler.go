package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, products)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusCreated, product)
}

// Update handles a partial product update
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), req.ToInput(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, product)
}

// Delete handles deleting a product and answers with the removed record
func (h *ProductHandler) Delete(c *gin.Context) {
	product, err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, product)
}

// GetLowStock handles getting products at or below their minimum stock level
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.productService.LowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, products)
}
