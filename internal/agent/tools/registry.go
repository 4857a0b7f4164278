package tools

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/schema"

	errx "github.com/hrnexus-poc/server/internal/core/error"
	"github.com/hrnexus-poc/server/internal/records"
	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// SearchInput is the parameter contract every dataset tool shares. The
// operator defaults to equals when the model omits it.
type SearchInput struct {
	FieldName string `json:"field_name"`
	Value     string `json:"value"`
	Operator  string `json:"operator,omitempty"`
}

// SearchOutput carries the matching records plus their count. Records holds
// the dataset's typed slice; callers marshal it when formatting summaries.
type SearchOutput struct {
	Total   int `json:"total"`
	Records any `json:"records"`
}

// Descriptor binds one dataset search to an LLM-invocable tool: a ToolInfo
// for function-calling plus the typed invoke closure.
type Descriptor struct {
	Info *schema.ToolInfo
	run  func(ctx context.Context, in *SearchInput) (*SearchOutput, error)
}

// Registry holds the immutable set of dataset tools, registered once at
// startup and read-shared across pipeline runs.
type Registry struct {
	byName map[string]*Descriptor
	order  []string
}

// NewRegistry registers the seven dataset tools over the loaded store.
func NewRegistry(store *records.Store) *Registry {
	r := &Registry{byName: make(map[string]*Descriptor)}
	for _, d := range datasetDescriptors(store) {
		r.register(d)
	}
	return r
}

func (r *Registry) register(d *Descriptor) {
	r.byName[d.Info.Name] = d
	r.order = append(r.order, d.Info.Name)
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Infos returns the ToolInfo set to bind to the response model.
func (r *Registry) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.byName[name].Info)
	}
	return infos
}

// Invoke runs the named tool. An unregistered name is a prompt-construction
// defect and returns UnknownToolError. A field the dataset does not have is
// a model mistake, not a fault: it is logged and converted into an empty
// result set so the user sees "no results" rather than an internal error.
func (r *Registry) Invoke(ctx context.Context, name string, in *SearchInput) (*SearchOutput, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, &errx.UnknownToolError{Tool: name}
	}

	out, err := d.run(ctx, in)
	if err != nil {
		var fieldErr *errx.FieldNotFoundError
		if errors.As(err, &fieldErr) {
			logx.Warn().
				Str("tool", name).
				Str("field", fieldErr.Field).
				Str("record", fieldErr.Record).
				Msg("Tool call requested a field the record does not have")
			return &SearchOutput{Total: 0}, nil
		}
		return nil, err
	}
	return out, nil
}
