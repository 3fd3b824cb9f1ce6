package agent

import (
	"context"
	"fmt"

	"github.com/deepmonapara9/invoice-agent/internal/llm"
	"github.com/mitchellh/mapstructure"
)

// Registered tool names. The set is fixed at startup.
const (
	toolCreateCustomer = "create_customer"
	toolCreateInvoice  = "create_invoice"
	toolListInvoices   = "list_invoices"
)

// validator is implemented by request types that check required fields.
// A tool's required list in its schema must match what its Validate enforces.
type validator interface {
	Validate() error
}

// handler executes a tool with raw model arguments.
type handler func(ctx context.Context, args map[string]any) (string, error)

type tool struct {
	def     llm.ToolDefinition
	icon    string
	handler handler
}

// Registry holds the immutable, ordered set of callable tools.
type Registry struct {
	order []string
	tools map[string]tool
}

// NewRegistry builds the registry over the given action handlers.
func NewRegistry(actions *Actions) *Registry {
	r := &Registry{tools: make(map[string]tool)}

	register(r, llm.ToolDefinition{
		Name:        toolCreateCustomer,
		Description: "Create a new customer in Stripe",
		Parameters: llm.Schema{
			Properties: map[string]llm.Property{
				"email":       {Type: "string", Description: "Customer email address"},
				"name":        {Type: "string", Description: "Customer name"},
				"description": {Type: "string", Description: "Customer description"},
			},
			Required: []string{"email"},
		},
	}, "👤", actions.CreateCustomer)

	register(r, llm.ToolDefinition{
		Name:        toolCreateInvoice,
		Description: "Create a new invoice for a customer",
		Parameters: llm.Schema{
			Properties: map[string]llm.Property{
				"customer_id": {Type: "string", Description: "Customer id to invoice"},
				"amount":      {Type: "integer", Description: "Amount in minor units"},
				"currency":    {Type: "string", Description: "Three-letter currency code"},
				"description": {Type: "string", Description: "Invoice description"},
			},
			Required: []string{"customer_id", "amount"},
		},
	}, "✅", actions.CreateInvoice)

	register(r, llm.ToolDefinition{
		Name:        toolListInvoices,
		Description: "List invoices, optionally for a specific customer",
		Parameters: llm.Schema{
			Properties: map[string]llm.Property{
				"customer_id": {Type: "string", Description: "Customer id to filter by"},
			},
		},
	}, "📋", actions.ListInvoices)

	return r
}

// register wires a typed action into the registry, decoding the model's
// argument map into the action's request type.
func register[Req any, PReq interface {
	*Req
	validator
}](r *Registry, def llm.ToolDefinition, icon string, action func(context.Context, Req) (string, error)) {
	h := func(ctx context.Context, args map[string]any) (string, error) {
		var req Req
		if err := decodeArgs(def.Name, args, &req); err != nil {
			return "", err
		}
		if err := PReq(&req).Validate(); err != nil {
			return "", &ActionError{Kind: ErrorKindBadArguments, Tool: def.Name, Detail: err.Error()}
		}
		return action(ctx, req)
	}

	r.order = append(r.order, def.Name)
	r.tools[def.Name] = tool{def: def, icon: icon, handler: h}
}

func decodeArgs(toolName string, args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("build decoder for %q: %w", toolName, err)
	}
	if err := dec.Decode(args); err != nil {
		return &ActionError{Kind: ErrorKindBadArguments, Tool: toolName, Detail: err.Error()}
	}
	return nil
}

// Definitions returns the tool descriptors in registration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Dispatch invokes the tool named in the call. The name must match a
// registered tool exactly; anything else is an ErrorKindUnknownTool.
// The returned icon decorates the final result when the tool is known.
func (r *Registry) Dispatch(ctx context.Context, call llm.ToolCall) (result, icon string, err error) {
	t, ok := r.tools[call.Name]
	if !ok {
		return "", "", &ActionError{
			Kind:   ErrorKindUnknownTool,
			Tool:   call.Name,
			Detail: fmt.Sprintf("tool %q is not registered", call.Name),
		}
	}

	result, err = t.handler(ctx, call.Args)
	return result, t.icon, err
}
