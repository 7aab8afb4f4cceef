package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
)

type InvoiceFromTextRequest struct {
	Text string `json:"text"`
}

type PaymentReminderRequest struct {
	InvoiceID string `json:"invoiceId"`
}

func (s *Server) InvoiceFromText(c *gin.Context) {
	var req InvoiceFromTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		AbortWithError(c, newValidationError("text", "required", "text is required"))
		return
	}

	draft := s.assistSvc.ExtractInvoiceDraft(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, draft)
}

func (s *Server) PaymentReminder(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req PaymentReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrNotFound)
		return
	}

	reminder, err := s.assistSvc.GeneratePaymentReminder(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

func (s *Server) DashboardSummary(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	insights, err := s.assistSvc.GenerateInsights(c.Request.Context(), ownerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}
