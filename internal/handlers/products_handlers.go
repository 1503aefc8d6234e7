package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// ProductHandlers handles product CRUD and bulk creation.
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ListProductsRequest represents query parameters for product search.
type ListProductsRequest struct {
	OrganizationID string `query:"organization_id"`
	WarehouseID    string `query:"warehouse_id"`
	Query          string `query:"q"`
	Category       string `query:"category"`
	Status         string `query:"status"`
	SortBy         string `query:"sort_by"`
	SortOrder      string `query:"sort_order"`
	Limit          int    `query:"limit"`
	Offset         int    `query:"offset"`
}

func (h *ProductHandlers) ListProducts(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	requested, err := parseRequestedFilter(req.OrganizationID, req.WarehouseID)
	if err != nil {
		return common.SendError(c, err)
	}

	filter := &models.ProductSearchFilter{
		Query:     req.Query,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}

	products, err := h.productService.List(c.Request().Context(), p, requested, filter)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
}

func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.productService.Create(c.Request().Context(), p, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandlers) GetProduct(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	product, err := h.productService.GetByID(c.Request().Context(), p, productID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProductRequest represents the product update payload.
type UpdateProductRequest struct {
	Name           *string  `json:"name"`
	SKU            *string  `json:"sku"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	Unit           *string  `json:"unit"`
	Status         *string  `json:"status"`
	BookStock      *int     `json:"book_stock"`
	BookStockValue *float64 `json:"book_stock_value"`
}

func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.productService.GetByID(c.Request().Context(), p, productID)
	if err != nil {
		return common.SendError(c, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.Unit != nil {
		product.Unit = req.Unit
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.BookStock != nil {
		product.BookStock = *req.BookStock
	}
	if req.BookStockValue != nil {
		product.BookStockValue = *req.BookStockValue
	}

	if err := h.productService.Update(c.Request().Context(), p, product); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.productService.Delete(c.Request().Context(), p, productID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

// BulkCreateProducts creates product rows, tolerating partial failure.
func (h *ProductHandlers) BulkCreateProducts(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var bulk services.ProductBulkCreate
	if err := c.Bind(&bulk); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.productService.BulkCreate(c.Request().Context(), p, &bulk)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
