// Package payments wraps the payments provider used for invoicing.
package payments

import (
	"context"
	"errors"
)

// ErrNotFound indicates a referenced record does not exist at the provider.
var ErrNotFound = errors.New("payments: not found")

// Customer is a customer record at the payments provider.
type Customer struct {
	ID    string
	Email string
	Name  string
}

// Invoice is an invoice record at the payments provider.
type Invoice struct {
	ID         string
	CustomerID string
	// Total is the invoice total in minor units (e.g. paise).
	Total    int64
	Currency string
	Status   string
}

// CustomerParams describes a customer to create.
type CustomerParams struct {
	Email       string
	Name        string
	Description string
}

// InvoiceParams describes an invoice header to create.
type InvoiceParams struct {
	CustomerID   string
	Currency     string
	Description  string
	DaysUntilDue int64
}

// LineItemParams describes a single invoice line item.
type LineItemParams struct {
	CustomerID  string
	InvoiceID   string
	Amount      int64
	Currency    string
	Description string
}

// Client is the subset of the payments provider the agent needs.
// Lookup failures for unknown ids are reported as ErrNotFound so callers
// can distinguish them from transport or provider failures.
type Client interface {
	CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	CreateInvoice(ctx context.Context, params InvoiceParams) (*Invoice, error)
	AddLineItem(ctx context.Context, params LineItemParams) error
	// FinalizeInvoice transitions an invoice from draft to payable.
	FinalizeInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
	// ListInvoices returns all invoices, filtered by customer when
	// customerID is non-empty.
	ListInvoices(ctx context.Context, customerID string) ([]*Invoice, error)
}
