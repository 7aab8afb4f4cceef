// Package prompt builds the fixed instructional prompts sent to the model.
// The wording is deliberately strict: the extraction schema and rules are
// what keep the downstream parser simple.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/billora/internal/assist/domain"
)

// Extraction returns the invoice-extraction prompt for the given text. The
// caller is responsible for truncating text beforehand.
func Extraction(text string) string {
	var b strings.Builder
	b.WriteString("You are a strict invoice data extraction engine.\n\n")
	b.WriteString("YOUR TASK:\n")
	b.WriteString("Extract CLIENT (billTo) information and invoice items from the given text.\n\n")
	b.WriteString("ABSOLUTE RULES (NO EXCEPTIONS):\n")
	b.WriteString("1. You MUST return ALL keys exactly as defined below.\n")
	b.WriteString("2. NEVER skip email, phone, or address keys.\n")
	b.WriteString("3. If a value is not found, return an empty string \"\".\n")
	b.WriteString("4. Client details ALWAYS belong to billTo.\n")
	b.WriteString("5. Do NOT assume business/seller/billFrom details unless explicitly mentioned.\n")
	b.WriteString("6. Do NOT rename keys.\n")
	b.WriteString("7. Return ONLY valid JSON. No explanations. No markdown.\n\n")
	b.WriteString("JSON SCHEMA (MUST FOLLOW EXACTLY):\n\n")
	b.WriteString("{\n")
	b.WriteString("  \"clientName\": \"\",\n")
	b.WriteString("  \"email\": \"\",\n")
	b.WriteString("  \"phone\": \"\",\n")
	b.WriteString("  \"address\": \"\",\n")
	b.WriteString("  \"items\": [\n")
	b.WriteString("    {\n")
	b.WriteString("      \"name\": \"\",\n")
	b.WriteString("      \"quantity\": 0,\n")
	b.WriteString("      \"unitPrice\": 0\n")
	b.WriteString("    }\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n\n")
	b.WriteString("EXTRACTION HINTS (IMPORTANT):\n")
	b.WriteString("- Client Name is a person's full name.\n")
	b.WriteString("- Email contains \"@\".\n")
	b.WriteString("- Phone is a 10-digit number.\n")
	b.WriteString("- Address is a location such as street, area, city, state, or country.\n")
	b.WriteString("- Items are products or services with quantity and price.\n\n")
	b.WriteString("TEXT TO ANALYZE:\n")
	b.WriteString(text)
	b.WriteString("\n\nREMEMBER:\n")
	b.WriteString("Even if you are unsure, still return the keys with empty values.\n")
	b.WriteString("RETURN JSON ONLY.\n")
	return b.String()
}

// Insights returns the dashboard-insight prompt from already-computed
// statistics. Amounts are formatted to two decimals here, at the prompt
// boundary.
func Insights(summary domain.DashboardSummary, recent string) string {
	var b strings.Builder
	b.WriteString("You are a friendly, practical financial assistant. Based on this summary, give 4 clear insights:\n\n")
	fmt.Fprintf(&b, "- Total invoices: %d\n", summary.TotalInvoices)
	fmt.Fprintf(&b, "- Paid invoices: %d\n", summary.PaidInvoices)
	fmt.Fprintf(&b, "- Unpaid invoices: %d\n", summary.UnpaidInvoices)
	fmt.Fprintf(&b, "- Revenue: ₹%.2f\n", summary.TotalRevenue)
	fmt.Fprintf(&b, "- Outstanding: ₹%.2f\n", summary.TotalOutstanding)
	fmt.Fprintf(&b, "- Recent: %s\n\n", recent)
	b.WriteString("Return JSON ONLY in this format:\n")
	b.WriteString("{\n")
	b.WriteString("  \"insights\": [\"Insight 1\", \"Insight 2\", \"Insight 3\", \"Insight 4\"]\n")
	b.WriteString("}\n")
	return b.String()
}

// Reminder returns the payment-reminder prompt for one invoice.
func Reminder(clientName, invoiceNumber string, amountDue float64, dueDate time.Time) string {
	var b strings.Builder
	b.WriteString("You are a professional and polite accounting assistant.\n")
	b.WriteString("Write a friendly reminder email to a client.\n\n")
	b.WriteString("Use the following details to personalize the email:\n")
	fmt.Fprintf(&b, "- Client Name: %s\n", clientName)
	fmt.Fprintf(&b, "- Invoice Number: %s\n", invoiceNumber)
	fmt.Fprintf(&b, "- Amount Due: %.2f\n", amountDue)
	fmt.Fprintf(&b, "- Due Date: %s\n\n", dueDate.Format("2 January 2006"))
	b.WriteString("The tone should be friendly but clear.\n")
	b.WriteString("Keep it concise.\n")
	b.WriteString("Start the email with \"Subject:\".\n")
	return b.String()
}
