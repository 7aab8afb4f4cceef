package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/invoice/calc"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, ownerID snowflake.ID, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	if strings.TrimSpace(req.InvoiceNumber) == "" {
		return nil, invoicedomain.ErrInvoiceNumberRequired
	}

	status, err := calc.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	items, totals, err := calc.ComputeTotals(req.Items)
	if err != nil {
		return nil, err
	}

	inv := &invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		OwnerID:       ownerID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		BillFrom:      req.BillFrom,
		BillTo:        req.BillTo,
		Items:         items,
		Notes:         req.Notes,
		PaymentTerms:  req.PaymentTerms,
		Status:        status,
		SubTotal:      totals.SubTotal,
		TaxTotal:      totals.TaxTotal,
		Total:         totals.Total,
	}

	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, invoicedomain.ErrDuplicateNumber
		}
		return nil, err
	}

	return inv, nil
}

func (s *Service) List(ctx context.Context, ownerID snowflake.ID) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetByID returns the invoice only when it belongs to the caller. A foreign
// owner's invoice is indistinguishable from a missing one.
func (s *Service) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var inv invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoicedomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id snowflake.ID, req invoicedomain.UpdateInvoiceRequest) (*invoicedomain.Invoice, error) {
	inv, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// Totals are recomputed in full when a new item list arrives; a partial
	// update without items keeps the stored totals untouched.
	if req.Items != nil {
		items, totals, err := calc.ComputeTotals(*req.Items)
		if err != nil {
			return nil, err
		}
		inv.Items = items
		inv.SubTotal = totals.SubTotal
		inv.TaxTotal = totals.TaxTotal
		inv.Total = totals.Total
	}

	if req.InvoiceNumber != nil {
		if strings.TrimSpace(*req.InvoiceNumber) == "" {
			return nil, invoicedomain.ErrInvoiceNumberRequired
		}
		inv.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.InvoiceDate != nil {
		inv.InvoiceDate = *req.InvoiceDate
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.BillFrom != nil {
		inv.BillFrom = *req.BillFrom
	}
	if req.BillTo != nil {
		inv.BillTo = *req.BillTo
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.PaymentTerms != nil {
		inv.PaymentTerms = *req.PaymentTerms
	}
	if req.Status != nil {
		status, err := calc.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		inv.Status = status
	}

	if err := s.db.WithContext(ctx).Save(inv).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, invoicedomain.ErrDuplicateNumber
		}
		return nil, err
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id snowflake.ID) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&invoicedomain.Invoice{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return invoicedomain.ErrNotFound
	}
	return nil
}
