package payments

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeClient implements Client against the Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a Stripe-backed payments client.
func NewStripeClient(apiKey string) *StripeClient {
	return &StripeClient{api: client.New(apiKey, nil)}
}

// CreateCustomer creates a customer record.
func (c *StripeClient) CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error) {
	cust, err := c.api.Customers.New(&stripe.CustomerParams{
		Params:      stripe.Params{Context: ctx},
		Email:       stripe.String(params.Email),
		Name:        stripe.String(params.Name),
		Description: stripe.String(params.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", mapStripeError(err))
	}
	return &Customer{ID: cust.ID, Email: cust.Email, Name: cust.Name}, nil
}

// GetCustomer retrieves a customer by id.
func (c *StripeClient) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	cust, err := c.api.Customers.Get(id, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve customer %q: %w", id, mapStripeError(err))
	}
	return &Customer{ID: cust.ID, Email: cust.Email, Name: cust.Name}, nil
}

// CreateInvoice creates a draft invoice header.
func (c *StripeClient) CreateInvoice(ctx context.Context, params InvoiceParams) (*Invoice, error) {
	inv, err := c.api.Invoices.New(&stripe.InvoiceParams{
		Params:           stripe.Params{Context: ctx},
		Customer:         stripe.String(params.CustomerID),
		Currency:         stripe.String(params.Currency),
		Description:      stripe.String(params.Description),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(params.DaysUntilDue),
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", mapStripeError(err))
	}
	return fromStripeInvoice(inv), nil
}

// AddLineItem attaches a line item to an invoice.
func (c *StripeClient) AddLineItem(ctx context.Context, params LineItemParams) error {
	_, err := c.api.InvoiceItems.New(&stripe.InvoiceItemParams{
		Params:      stripe.Params{Context: ctx},
		Customer:    stripe.String(params.CustomerID),
		Invoice:     stripe.String(params.InvoiceID),
		Amount:      stripe.Int64(params.Amount),
		Currency:    stripe.String(params.Currency),
		Description: stripe.String(params.Description),
	})
	if err != nil {
		return fmt.Errorf("create invoice item: %w", mapStripeError(err))
	}
	return nil
}

// FinalizeInvoice transitions an invoice from draft to payable.
func (c *StripeClient) FinalizeInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	inv, err := c.api.Invoices.FinalizeInvoice(invoiceID, &stripe.InvoiceFinalizeInvoiceParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("finalize invoice %q: %w", invoiceID, mapStripeError(err))
	}
	return fromStripeInvoice(inv), nil
}

// ListInvoices returns all invoices, filtered by customer when customerID is set.
func (c *StripeClient) ListInvoices(ctx context.Context, customerID string) ([]*Invoice, error) {
	params := &stripe.InvoiceListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	}

	var invoices []*Invoice
	it := c.api.Invoices.List(params)
	for it.Next() {
		invoices = append(invoices, fromStripeInvoice(it.Invoice()))
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", mapStripeError(err))
	}
	return invoices, nil
}

func fromStripeInvoice(inv *stripe.Invoice) *Invoice {
	out := &Invoice{
		ID:       inv.ID,
		Total:    inv.Total,
		Currency: string(inv.Currency),
		Status:   string(inv.Status),
	}
	if inv.Customer != nil {
		out.CustomerID = inv.Customer.ID
	}
	return out
}

// mapStripeError converts invalid-reference failures to ErrNotFound so
// callers can branch without importing the SDK.
func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == 404 {
			return ErrNotFound
		}
	}
	return err
}
