package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInvoiceService(t *testing.T) invoicedomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
}

func createRequest() invoicedomain.CreateInvoiceRequest {
	return invoicedomain.CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		InvoiceDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		BillFrom:      invoicedomain.Party{BusinessName: "Acme Studio", Email: "studio@acme.test"},
		BillTo:        invoicedomain.Party{ClientName: "Globex", Email: "ap@globex.test"},
		Items: []invoicedomain.LineItemInput{
			{Name: "Design", Quantity: 2, UnitPrice: 150, TaxPercent: 0},
			{Name: "Development", Quantity: 5, UnitPrice: 200, TaxPercent: 10},
		},
	}
}

func TestCreateComputesTotalsAndDefaultsStatus(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	assert.Equal(t, invoicedomain.InvoiceStatusPending, inv.Status)
	assert.InDelta(t, 1300.0, inv.SubTotal, 1e-9)
	assert.InDelta(t, 100.0, inv.TaxTotal, 1e-9)
	assert.InDelta(t, 1400.0, inv.Total, 1e-9)
	require.Len(t, inv.Items, 2)
	assert.InDelta(t, 300.0, inv.Items[0].Total, 1e-9)
	assert.InDelta(t, 1100.0, inv.Items[1].Total, 1e-9)
}

func TestCreateValidation(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	req := createRequest()
	req.InvoiceNumber = "   "
	_, err := svc.Create(ctx, snowflake.ID(10), req)
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceNumberRequired)

	req = createRequest()
	req.Items = nil
	_, err = svc.Create(ctx, snowflake.ID(10), req)
	assert.ErrorIs(t, err, invoicedomain.ErrItemsRequired)

	req = createRequest()
	req.Status = "paid"
	_, err = svc.Create(ctx, snowflake.ID(10), req)
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)
}

func TestCreateRejectsDuplicateNumberPerOwner(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, snowflake.ID(10), createRequest())
	assert.ErrorIs(t, err, invoicedomain.ErrDuplicateNumber)

	// Same number under a different owner is fine.
	_, err = svc.Create(ctx, snowflake.ID(11), createRequest())
	assert.NoError(t, err)
}

func TestGetByIDScopedToOwner(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, snowflake.ID(10), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	_, err = svc.GetByID(ctx, snowflake.ID(99), inv.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestUpdateRecomputesTotalsOnlyWhenItemsPresent(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	// Partial update without items keeps the stored totals.
	notes := "net 30"
	updated, err := svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "net 30", updated.Notes)
	assert.InDelta(t, 1400.0, updated.Total, 1e-9)

	// New item list replaces items and totals wholesale.
	items := []invoicedomain.LineItemInput{
		{Name: "Consulting", Quantity: 1, UnitPrice: 500, TaxPercent: 20},
	}
	updated, err = svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{Items: &items})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.InDelta(t, 500.0, updated.SubTotal, 1e-9)
	assert.InDelta(t, 100.0, updated.TaxTotal, 1e-9)
	assert.InDelta(t, 600.0, updated.Total, 1e-9)
}

func TestUpdateValidation(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	empty := []invoicedomain.LineItemInput{}
	_, err = svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{Items: &empty})
	assert.ErrorIs(t, err, invoicedomain.ErrItemsRequired)

	bad := "Overdue"
	_, err = svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{Status: &bad})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)

	blank := "  "
	_, err = svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{InvoiceNumber: &blank})
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceNumberRequired)

	_, err = svc.Update(ctx, snowflake.ID(99), inv.ID, invoicedomain.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	paid := "Paid"
	updated, err := svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusPaid, updated.Status)

	unpaid := "UnPaid"
	updated, err = svc.Update(ctx, snowflake.ID(10), inv.ID, invoicedomain.UpdateInvoiceRequest{Status: &unpaid})
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusUnPaid, updated.Status)
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, snowflake.ID(99), inv.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, snowflake.ID(10), inv.ID))

	err = svc.Delete(ctx, snowflake.ID(10), inv.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestListReturnsOnlyOwnersInvoices(t *testing.T) {
	svc := setupInvoiceService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, snowflake.ID(10), createRequest())
	require.NoError(t, err)

	other := createRequest()
	other.InvoiceNumber = "INV-002"
	_, err = svc.Create(ctx, snowflake.ID(20), other)
	require.NoError(t, err)

	invoices, err := svc.List(ctx, snowflake.ID(10))
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-001", invoices[0].InvoiceNumber)
}
