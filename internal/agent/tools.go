package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepmonapara9/invoice-agent/internal/payments"
)

const (
	defaultCurrency     = "inr"
	invoiceDaysUntilDue = 30

	customerFallbackDescription = "Customer created via AI agent"
	invoiceFallbackDescription  = "Invoice created by AI agent"
	lineItemFallbackDescription = "Invoice item"
	demoCustomerDescription     = "Demo customer created by AI agent"
)

// Actions implements the three invoicing operations against the payments
// provider. Every remote failure is converted into an *ActionError at this
// boundary; callers never see a raw provider error.
type Actions struct {
	payments payments.Client
}

// NewActions creates the action handler set.
func NewActions(client payments.Client) *Actions {
	return &Actions{payments: client}
}

type createCustomerRequest struct {
	Email       string `mapstructure:"email"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

func (r *createCustomerRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

// CreateCustomer creates a customer record, deriving a name from the email's
// local part and a fixed description when those fields are absent.
func (a *Actions) CreateCustomer(ctx context.Context, req createCustomerRequest) (string, error) {
	name := req.Name
	if name == "" {
		name, _, _ = strings.Cut(req.Email, "@")
	}
	description := req.Description
	if description == "" {
		description = customerFallbackDescription
	}

	customer, err := a.payments.CreateCustomer(ctx, payments.CustomerParams{
		Email:       req.Email,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return "", &ActionError{Kind: ErrorKindProvider, Tool: toolCreateCustomer, Detail: err.Error()}
	}

	return fmt.Sprintf("Customer %s created successfully for %s", customer.ID, req.Email), nil
}

type createInvoiceRequest struct {
	CustomerID string `mapstructure:"customer_id"`
	// Amount is in minor units. Declared as float64 because the model may
	// emit a JSON number with a fractional part; it is truncated to an
	// integer before use.
	Amount      float64 `mapstructure:"amount"`
	Currency    string  `mapstructure:"currency"`
	Description string  `mapstructure:"description"`
}

func (r *createInvoiceRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return errors.New("customer_id is required")
	}
	if r.Amount <= 0 {
		return errors.New("amount must be a positive number of minor units")
	}
	return nil
}

// CreateInvoice creates, itemizes and finalizes an invoice for a customer.
// When the customer id does not exist at the provider, a demo customer is
// created in its place and the invoice proceeds under the new id.
func (a *Actions) CreateInvoice(ctx context.Context, req createInvoiceRequest) (string, error) {
	amount := int64(req.Amount)
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	customerID := req.CustomerID
	_, err := a.payments.GetCustomer(ctx, customerID)
	switch {
	case errors.Is(err, payments.ErrNotFound):
		demo, createErr := a.payments.CreateCustomer(ctx, payments.CustomerParams{
			Email:       customerID + "@demo.com",
			Name:        "Demo Customer " + customerID,
			Description: demoCustomerDescription,
		})
		if createErr != nil {
			return "", &ActionError{Kind: ErrorKindProvider, Tool: toolCreateInvoice, Detail: createErr.Error()}
		}
		customerID = demo.ID
	case err != nil:
		return "", &ActionError{Kind: ErrorKindProvider, Tool: toolCreateInvoice, Detail: err.Error()}
	}

	description := req.Description
	if description == "" {
		description = invoiceFallbackDescription
	}

	invoice, err := a.payments.CreateInvoice(ctx, payments.InvoiceParams{
		CustomerID:   customerID,
		Currency:     currency,
		Description:  description,
		DaysUntilDue: invoiceDaysUntilDue,
	})
	if err != nil {
		return "", &ActionError{Kind: ErrorKindProvider, Tool: toolCreateInvoice, Detail: err.Error()}
	}

	itemDescription := req.Description
	if itemDescription == "" {
		itemDescription = lineItemFallbackDescription
	}
	if err := a.payments.AddLineItem(ctx, payments.LineItemParams{
		CustomerID:  customerID,
		InvoiceID:   invoice.ID,
		Amount:      amount,
		Currency:    currency,
		Description: itemDescription,
	}); err != nil {
		return "", &ActionError{Kind: ErrorKindProvider, Tool: toolCreateInvoice, Detail: err.Error()}
	}

	finalized, err := a.payments.FinalizeInvoice(ctx, invoice.ID)
	if err != nil {
		return "", &ActionError{Kind: ErrorKindProvider, Tool: toolCreateInvoice, Detail: err.Error()}
	}

	upper := strings.ToUpper(currency)
	return fmt.Sprintf("Invoice %s created successfully for customer %s with amount ₹%.2f %s. Total: ₹%.2f %s",
		finalized.ID, customerID, float64(amount)/100, upper, float64(finalized.Total)/100, upper), nil
}

type listInvoicesRequest struct {
	CustomerID string `mapstructure:"customer_id"`
}

func (r *listInvoicesRequest) Validate() error { return nil }

// ListInvoices returns a count-only summary, optionally filtered by customer.
func (a *Actions) ListInvoices(ctx context.Context, req listInvoicesRequest) (string, error) {
	invoices, err := a.payments.ListInvoices(ctx, req.CustomerID)
	if err != nil {
		return "", &ActionError{Kind: ErrorKindProvider, Tool: toolListInvoices, Detail: err.Error()}
	}
	return fmt.Sprintf("Found %d invoices.", len(invoices)), nil
}
