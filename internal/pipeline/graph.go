package pipeline

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/stage"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Entry is the execution metadata recorded for one stage in a built graph.
type Entry struct {
	// Kind is the stage's role.
	Kind stage.Kind
	// Subtype is the connector tag, empty for transforms.
	Subtype string
	// Next is the name of the successor stage, empty for the sink.
	Next string
	// Config is the stage's opaque configuration snapshot.
	Config cty.Value
	// Stage references the underlying descriptor. The graph does not own
	// the chain; descriptor lifetime stays with the caller.
	Stage *stage.Descriptor
}

// MarshalJSON renders the entry for inspection output. The descriptor
// reference is omitted; the config payload is rendered through cty's JSON
// support without being interpreted.
func (e Entry) MarshalJSON() ([]byte, error) {
	type jsonEntry struct {
		Kind    string                  `json:"kind"`
		Subtype string                  `json:"subtype,omitempty"`
		Next    string                  `json:"next,omitempty"`
		Config  ctyjson.SimpleJSONValue `json:"config"`
	}
	cfg := e.Config
	if cfg == cty.NilVal {
		cfg = cty.EmptyObjectVal
	}
	return json.Marshal(jsonEntry{
		Kind:    e.Kind.String(),
		Subtype: e.Subtype,
		Next:    e.Next,
		Config:  ctyjson.SimpleJSONValue{Value: cfg},
	})
}

// Graph is the flattened, name-keyed projection of a validated chain.
// It is built once per BuildGraph call and never updated incrementally.
type Graph struct {
	// BuildID uniquely identifies this build of the graph.
	BuildID uuid.UUID `json:"build_id"`
	// Entries maps stage name to its execution metadata.
	Entries map[string]Entry `json:"entries"`
}

// BuildGraph flattens a validated chain into a Graph. If two descriptors
// share a name, the later one in walk order overwrites the earlier entry;
// this is logged, not rejected. Loaders guarantee unique names for
// file-declared pipelines, and API callers own that discipline themselves.
func BuildGraph(ctx context.Context, chain Chain) *Graph {
	logger := ctxlog.FromContext(ctx)

	graph := &Graph{
		BuildID: uuid.New(),
		Entries: make(map[string]Entry, len(chain)),
	}
	for _, d := range chain {
		if _, exists := graph.Entries[d.Name]; exists {
			logger.Warn("Duplicate stage name found, it will be overwritten.", "name", d.Name)
		}
		next := ""
		if d.Next() != nil {
			next = d.Next().Name
		}
		graph.Entries[d.Name] = Entry{
			Kind:    d.Kind,
			Subtype: d.Subtype,
			Next:    next,
			Config:  d.Config,
			Stage:   d,
		}
	}

	logger.Debug("Execution graph built.", "build_id", graph.BuildID, "entry_count", len(graph.Entries))
	return graph
}
