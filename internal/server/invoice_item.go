package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoiceitemdomain "github.com/khatahq/khata/internal/invoiceitem/domain"
)

type createInvoiceItemRequest struct {
	Description   string  `json:"description"`
	Quantity      *int64  `json:"quantity"`
	UnitPrice     string  `json:"unit_price"`
	TaxPercentage *string `json:"tax_percentage"`
}

func (s *Server) CreateInvoiceItem(c *gin.Context) {
	var req createInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceItemSvc.Create(c.Request.Context(), invoiceitemdomain.CreateItemRequest{
		InvoiceID:     c.Param("id"),
		Description:   strings.TrimSpace(req.Description),
		Quantity:      req.Quantity,
		UnitPrice:     strings.TrimSpace(req.UnitPrice),
		TaxPercentage: req.TaxPercentage,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoiceItems(c *gin.Context) {
	resp, err := s.invoiceItemSvc.ListByInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceItemByID(c *gin.Context) {
	resp, err := s.invoiceItemSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInvoiceItemRequest struct {
	Description   *string `json:"description"`
	Quantity      *int64  `json:"quantity"`
	UnitPrice     *string `json:"unit_price"`
	TaxPercentage *string `json:"tax_percentage"`
}

func (s *Server) UpdateInvoiceItem(c *gin.Context) {
	var req updateInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceItemSvc.Update(c.Request.Context(), invoiceitemdomain.UpdateItemRequest{
		ID:            c.Param("id"),
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		TaxPercentage: req.TaxPercentage,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoiceItem(c *gin.Context) {
	if err := s.invoiceItemSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}
