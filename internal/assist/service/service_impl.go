package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	assistdomain "github.com/smallbiznis/billora/internal/assist/domain"
	"github.com/smallbiznis/billora/internal/assist/genai"
	"github.com/smallbiznis/billora/internal/assist/prompt"
	"github.com/smallbiznis/billora/internal/config"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const maxInsights = 4

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Completer  genai.Completer
	Config     *config.AssistConfigHolder
	InvoiceSvc invoicedomain.Service
}

type Service struct {
	log        *zap.Logger
	completer  genai.Completer
	cfg        *config.AssistConfigHolder
	invoiceSvc invoicedomain.Service
}

func NewService(p ServiceParam) assistdomain.Service {
	return &Service{
		log:        p.Log.Named("assist.service"),
		completer:  p.Completer,
		cfg:        p.Config,
		invoiceSvc: p.InvoiceSvc,
	}
}

// ExtractInvoiceDraft turns free text into an invoice draft. The pipeline is
// fail-open on purpose: transport errors, empty completions and malformed
// JSON all collapse to the fixed demo draft so the caller-facing flow never
// breaks. Failures are logged and counted instead.
func (s *Service) ExtractInvoiceDraft(ctx context.Context, text string) assistdomain.ExtractedInvoiceDraft {
	draft, err := s.extractInvoiceDraft(ctx, text)
	if err != nil {
		s.log.Warn("extraction failed, serving demo draft", zap.Error(err))
		extractionFallbacks.Inc()
		return assistdomain.DemoDraft()
	}
	return draft
}

func (s *Service) extractInvoiceDraft(ctx context.Context, text string) (assistdomain.ExtractedInvoiceDraft, error) {
	cfg := s.cfg.Current()

	// Bound input size before it reaches the model. Truncation is silent.
	if limit := cfg.ExtractionInputLimit; len(text) > limit {
		text = text[:limit]
	}

	temp := float32(cfg.ExtractionTemp)
	raw, err := s.complete(ctx, "extraction", cfg.Model, prompt.Extraction(text), genai.CompleteOptions{
		Temperature:     &temp,
		MaxOutputTokens: int32(cfg.ExtractionMaxTokens),
	})
	if err != nil {
		return assistdomain.ExtractedInvoiceDraft{}, err
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		return assistdomain.ExtractedInvoiceDraft{}, fmt.Errorf("%w: %v", assistdomain.ErrMalformedResponse, err)
	}

	return coerceDraft(parsed), nil
}

// coerceDraft rebuilds the draft field by field with explicit defaults, so
// the output shape holds even when the model adds, omits or mistypes keys.
func coerceDraft(parsed map[string]any) assistdomain.ExtractedInvoiceDraft {
	draft := assistdomain.ExtractedInvoiceDraft{
		ClientName: stringField(parsed, "clientName"),
		Email:      stringField(parsed, "email"),
		Phone:      stringField(parsed, "phone"),
		Address:    stringField(parsed, "address"),
		Items:      []assistdomain.DraftItem{},
	}

	rawItems, ok := parsed["items"].([]any)
	if !ok {
		return draft
	}
	for _, rawItem := range rawItems {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		draft.Items = append(draft.Items, assistdomain.DraftItem{
			Name:      stringField(item, "name"),
			Quantity:  numberField(item, "quantity"),
			UnitPrice: numberField(item, "unitPrice"),
		})
	}
	return draft
}

// GenerateInsights computes deterministic statistics over the owner's
// invoices, then asks the model to phrase them. Unlike extraction, failures
// here propagate: the statistics are already useful, so a broken completion
// is surfaced instead of masked.
func (s *Service) GenerateInsights(ctx context.Context, ownerID snowflake.ID) (assistdomain.DashboardInsights, error) {
	invoices, err := s.invoiceSvc.List(ctx, ownerID)
	if err != nil {
		return assistdomain.DashboardInsights{}, err
	}
	if len(invoices) == 0 {
		return assistdomain.DashboardInsights{}, assistdomain.ErrNoInvoices
	}

	summary, recent := summarize(invoices)

	cfg := s.cfg.Current()
	temp := float32(cfg.InsightsTemp)
	raw, err := s.complete(ctx, "insights", cfg.Model, prompt.Insights(summary, recent), genai.CompleteOptions{
		Temperature:     &temp,
		MaxOutputTokens: int32(cfg.InsightsMaxTokens),
	})
	if err != nil {
		return assistdomain.DashboardInsights{}, err
	}

	var parsed struct {
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		return assistdomain.DashboardInsights{}, fmt.Errorf("%w: %v", assistdomain.ErrMalformedResponse, err)
	}

	insights := parsed.Insights
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}

	return assistdomain.DashboardInsights{
		Summary:  summary,
		Insights: insights,
	}, nil
}

// GeneratePaymentReminder drafts a reminder email for one invoice. The raw
// completion is returned as-is; failures propagate.
func (s *Service) GeneratePaymentReminder(ctx context.Context, ownerID, invoiceID snowflake.ID) (string, error) {
	inv, err := s.invoiceSvc.GetByID(ctx, ownerID, invoiceID)
	if err != nil {
		return "", err
	}

	cfg := s.cfg.Current()
	return s.complete(ctx, "reminder", cfg.Model,
		prompt.Reminder(inv.BillTo.ClientName, inv.InvoiceNumber, inv.Total, inv.DueDate),
		genai.CompleteOptions{})
}

func (s *Service) complete(ctx context.Context, operation, model, promptText string, opts genai.CompleteOptions) (string, error) {
	raw, err := s.completer.Complete(ctx, model, promptText, opts)
	completions.WithLabelValues(operation).Inc()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", assistdomain.ErrEmptyResponse
	}
	return raw, nil
}

func summarize(invoices []invoicedomain.Invoice) (assistdomain.DashboardSummary, string) {
	summary := assistdomain.DashboardSummary{TotalInvoices: len(invoices)}
	for _, inv := range invoices {
		if inv.Status == invoicedomain.InvoiceStatusPaid {
			summary.PaidInvoices++
			summary.TotalRevenue += inv.Total
		} else {
			summary.UnpaidInvoices++
			summary.TotalOutstanding += inv.Total
		}
	}

	recentCount := len(invoices)
	if recentCount > 5 {
		recentCount = 5
	}
	parts := make([]string, 0, recentCount)
	for _, inv := range invoices[:recentCount] {
		parts = append(parts, fmt.Sprintf("#%s ₹%.2f (%s)", inv.InvoiceNumber, inv.Total, inv.Status))
	}

	return summary, strings.Join(parts, ", ")
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func numberField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}
