package agent

import "fmt"

// ErrorKind classifies action failures so the agent loop can decide how to
// surface them.
type ErrorKind string

const (
	// ErrorKindProvider is a remote payments-provider failure. Surfaced as a
	// descriptive text result in a normal response.
	ErrorKindProvider ErrorKind = "provider"
	// ErrorKindBadArguments means the model's arguments did not decode or
	// failed validation.
	ErrorKindBadArguments ErrorKind = "bad_arguments"
	// ErrorKindUnknownTool means the model asked for a tool that is not
	// registered.
	ErrorKindUnknownTool ErrorKind = "unknown_tool"
)

// ActionError is a typed action failure.
type ActionError struct {
	Kind   ErrorKind
	Tool   string
	Detail string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: tool %q: %s", e.Kind, e.Tool, e.Detail)
}

// UserText renders the failure as the user-facing result string for the
// tool that ran.
func (e *ActionError) UserText() string {
	switch e.Tool {
	case toolCreateCustomer:
		return "Error creating customer: " + e.Detail
	case toolCreateInvoice:
		return "Error creating invoice: " + e.Detail
	case toolListInvoices:
		return "Error listing invoices: " + e.Detail
	default:
		return "Error: " + e.Detail
	}
}
