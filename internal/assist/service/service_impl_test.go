package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	assistdomain "github.com/smallbiznis/billora/internal/assist/domain"
	"github.com/smallbiznis/billora/internal/assist/genai"
	"github.com/smallbiznis/billora/internal/config"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
	prompts  []string
	opts     []genai.CompleteOptions
}

func (f *fakeCompleter) Complete(ctx context.Context, model, prompt string, opts genai.CompleteOptions) (string, error) {
	_ = ctx
	_ = model
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.response, f.err
}

type fakeInvoiceService struct {
	invoices []invoicedomain.Invoice
	listErr  error
	getErr   error
}

func (f *fakeInvoiceService) Create(ctx context.Context, ownerID snowflake.ID, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	_ = ctx
	_ = ownerID
	_ = req
	return nil, errors.New("not implemented")
}

func (f *fakeInvoiceService) List(ctx context.Context, ownerID snowflake.ID) ([]invoicedomain.Invoice, error) {
	_ = ctx
	_ = ownerID
	return f.invoices, f.listErr
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	_ = ctx
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.invoices {
		if f.invoices[i].ID == id && f.invoices[i].OwnerID == ownerID {
			return &f.invoices[i], nil
		}
	}
	return nil, invoicedomain.ErrNotFound
}

func (f *fakeInvoiceService) Update(ctx context.Context, ownerID, id snowflake.ID, req invoicedomain.UpdateInvoiceRequest) (*invoicedomain.Invoice, error) {
	_ = ctx
	_ = ownerID
	_ = id
	_ = req
	return nil, errors.New("not implemented")
}

func (f *fakeInvoiceService) Delete(ctx context.Context, ownerID, id snowflake.ID) error {
	_ = ctx
	_ = ownerID
	_ = id
	return errors.New("not implemented")
}

func setupAssistService(t *testing.T, completer *fakeCompleter, invSvc invoicedomain.Service) assistdomain.Service {
	t.Helper()

	holder, err := config.NewAssistConfigHolder()
	require.NoError(t, err)

	if invSvc == nil {
		invSvc = &fakeInvoiceService{}
	}

	return NewService(ServiceParam{
		Log:        zap.NewNop(),
		Completer:  completer,
		Config:     holder,
		InvoiceSvc: invSvc,
	})
}

func TestExtractInvoiceDraftParsesModelOutput(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"clientName": "Globex",
		"email": "ap@globex.test",
		"phone": "+91 98765",
		"address": "12 Main St",
		"items": [
			{"name": "Logo design", "quantity": 1, "unitPrice": 4000},
			{"name": "Hosting", "quantity": 12, "unitPrice": 250}
		]
	}`}
	svc := setupAssistService(t, completer, nil)

	draft := svc.ExtractInvoiceDraft(context.Background(), "invoice Globex for logo design and hosting")

	assert.Equal(t, "Globex", draft.ClientName)
	assert.Equal(t, "ap@globex.test", draft.Email)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, "Logo design", draft.Items[0].Name)
	assert.InDelta(t, 250.0, draft.Items[1].UnitPrice, 1e-9)
}

func TestExtractInvoiceDraftStripsMarkdownFences(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n{\"clientName\": \"Globex\", \"items\": []}\n```"}
	svc := setupAssistService(t, completer, nil)

	draft := svc.ExtractInvoiceDraft(context.Background(), "some text")

	assert.Equal(t, "Globex", draft.ClientName)
	assert.NotNil(t, draft.Items)
	assert.Empty(t, draft.Items)
}

func TestExtractInvoiceDraftFallsBackOnTransportError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("connection refused")}
	svc := setupAssistService(t, completer, nil)

	draft := svc.ExtractInvoiceDraft(context.Background(), "some text")

	assert.Equal(t, assistdomain.DemoDraft(), draft)
}

func TestExtractInvoiceDraftFallsBackOnEmptyResponse(t *testing.T) {
	completer := &fakeCompleter{response: "   \n  "}
	svc := setupAssistService(t, completer, nil)

	draft := svc.ExtractInvoiceDraft(context.Background(), "some text")

	assert.Equal(t, assistdomain.DemoDraft(), draft)
}

func TestExtractInvoiceDraftFallsBackOnMalformedJSON(t *testing.T) {
	completer := &fakeCompleter{response: "Sure! Here is the invoice you asked for."}
	svc := setupAssistService(t, completer, nil)

	draft := svc.ExtractInvoiceDraft(context.Background(), "some text")

	assert.Equal(t, assistdomain.DemoDraft(), draft)
}

func TestExtractInvoiceDraftCoercesMissingAndMistypedFields(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"clientName": 42,
		"items": [
			{"name": "Design", "quantity": "3", "unitPrice": 100},
			"not an item",
			{"name": "Extra"}
		],
		"unexpected": {"nested": true}
	}`}
	svc := setupAssistService(t, completer, nil)

	draft := svc.ExtractInvoiceDraft(context.Background(), "some text")

	assert.Equal(t, "", draft.ClientName)
	assert.Equal(t, "", draft.Email)
	require.Len(t, draft.Items, 2)
	assert.InDelta(t, 3.0, draft.Items[0].Quantity, 1e-9)
	assert.InDelta(t, 0.0, draft.Items[1].UnitPrice, 1e-9)
}

func TestExtractInvoiceDraftTruncatesLongInput(t *testing.T) {
	completer := &fakeCompleter{response: `{"clientName": "X", "items": []}`}
	svc := setupAssistService(t, completer, nil)

	long := strings.Repeat("a", 5000)
	svc.ExtractInvoiceDraft(context.Background(), long)

	require.Len(t, completer.prompts, 1)
	// The prompt embeds the input; only the first 1500 characters survive.
	assert.Contains(t, completer.prompts[0], strings.Repeat("a", 1500))
	assert.NotContains(t, completer.prompts[0], strings.Repeat("a", 1501))
}

func TestExtractInvoiceDraftUsesDeterministicOptions(t *testing.T) {
	completer := &fakeCompleter{response: `{"clientName": "X", "items": []}`}
	svc := setupAssistService(t, completer, nil)

	svc.ExtractInvoiceDraft(context.Background(), "text")

	require.Len(t, completer.opts, 1)
	require.NotNil(t, completer.opts[0].Temperature)
	assert.InDelta(t, 0.0, float64(*completer.opts[0].Temperature), 1e-9)
	assert.Equal(t, int32(400), completer.opts[0].MaxOutputTokens)
}

func TestGenerateInsightsRequiresInvoices(t *testing.T) {
	completer := &fakeCompleter{}
	svc := setupAssistService(t, completer, &fakeInvoiceService{})

	_, err := svc.GenerateInsights(context.Background(), snowflake.ID(10))
	assert.ErrorIs(t, err, assistdomain.ErrNoInvoices)
	assert.Zero(t, completer.calls)
}

func TestGenerateInsightsSummarizesAndCaps(t *testing.T) {
	invSvc := &fakeInvoiceService{invoices: []invoicedomain.Invoice{
		{ID: 1, OwnerID: 10, InvoiceNumber: "INV-001", Status: invoicedomain.InvoiceStatusPaid, Total: 1400},
		{ID: 2, OwnerID: 10, InvoiceNumber: "INV-002", Status: invoicedomain.InvoiceStatusPending, Total: 600},
		{ID: 3, OwnerID: 10, InvoiceNumber: "INV-003", Status: invoicedomain.InvoiceStatusUnPaid, Total: 250},
	}}
	completer := &fakeCompleter{response: `{"insights": ["one", "two", "three", "four", "five", "six"]}`}
	svc := setupAssistService(t, completer, invSvc)

	got, err := svc.GenerateInsights(context.Background(), snowflake.ID(10))
	require.NoError(t, err)

	assert.Equal(t, 3, got.Summary.TotalInvoices)
	assert.Equal(t, 1, got.Summary.PaidInvoices)
	assert.Equal(t, 2, got.Summary.UnpaidInvoices)
	assert.InDelta(t, 1400.0, got.Summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 850.0, got.Summary.TotalOutstanding, 1e-9)
	assert.Len(t, got.Insights, 4)
}

func TestGenerateInsightsPropagatesFailures(t *testing.T) {
	invSvc := &fakeInvoiceService{invoices: []invoicedomain.Invoice{
		{ID: 1, OwnerID: 10, InvoiceNumber: "INV-001", Status: invoicedomain.InvoiceStatusPaid, Total: 100},
	}}

	svc := setupAssistService(t, &fakeCompleter{err: errors.New("boom")}, invSvc)
	_, err := svc.GenerateInsights(context.Background(), snowflake.ID(10))
	assert.Error(t, err)

	svc = setupAssistService(t, &fakeCompleter{response: ""}, invSvc)
	_, err = svc.GenerateInsights(context.Background(), snowflake.ID(10))
	assert.ErrorIs(t, err, assistdomain.ErrEmptyResponse)

	svc = setupAssistService(t, &fakeCompleter{response: "no json here"}, invSvc)
	_, err = svc.GenerateInsights(context.Background(), snowflake.ID(10))
	assert.ErrorIs(t, err, assistdomain.ErrMalformedResponse)
}

func TestGeneratePaymentReminder(t *testing.T) {
	due := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	invSvc := &fakeInvoiceService{invoices: []invoicedomain.Invoice{
		{
			ID:            7,
			OwnerID:       10,
			InvoiceNumber: "INV-007",
			BillTo:        invoicedomain.Party{ClientName: "Globex"},
			Total:         1400,
			DueDate:       due,
		},
	}}
	completer := &fakeCompleter{response: "Subject: Payment reminder for INV-007\n\nDear Globex, ..."}
	svc := setupAssistService(t, completer, invSvc)

	reminder, err := svc.GeneratePaymentReminder(context.Background(), snowflake.ID(10), snowflake.ID(7))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reminder, "Subject:"))

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Globex")
	assert.Contains(t, completer.prompts[0], "INV-007")
	assert.Contains(t, completer.prompts[0], "10 February 2026")
}

func TestGeneratePaymentReminderUnknownInvoice(t *testing.T) {
	completer := &fakeCompleter{}
	svc := setupAssistService(t, completer, &fakeInvoiceService{})

	_, err := svc.GeneratePaymentReminder(context.Background(), snowflake.ID(10), snowflake.ID(404))
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
	assert.Zero(t, completer.calls)
}

func TestGeneratePaymentReminderPropagatesCompletionError(t *testing.T) {
	invSvc := &fakeInvoiceService{invoices: []invoicedomain.Invoice{
		{ID: 7, OwnerID: 10, InvoiceNumber: "INV-007"},
	}}
	svc := setupAssistService(t, &fakeCompleter{err: errors.New("boom")}, invSvc)

	_, err := svc.GeneratePaymentReminder(context.Background(), snowflake.ID(10), snowflake.ID(7))
	assert.Error(t, err)
}
