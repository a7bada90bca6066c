package pipeline

import (
	"context"

	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/stage"
)

// Chain is the ordered sequence of descriptors produced by a successful
// validation, head first.
type Chain []*stage.Descriptor

// allowedNext is the adjacency table for stage kinds. A sink is terminal
// and permits no successor.
var allowedNext = map[stage.Kind][]stage.Kind{
	stage.Source:    {stage.Transform, stage.Sink},
	stage.Transform: {stage.Transform, stage.Sink},
	stage.Sink:      {},
}

func legalSuccessor(prev, cur stage.Kind) bool {
	for _, k := range allowedNext[prev] {
		if k == cur {
			return true
		}
	}
	return false
}

// Validate checks the structure of the chain that entry belongs to. Any
// descriptor of the chain may be passed; the head is resolved internally.
//
// The walk fails fast with a *StructuralError on the first violation: a
// head that is not a source, an adjacency the table forbids, or a tail
// that is not a sink. On success it returns every visited descriptor in
// chain order. The returned chain is local to this call, so Validate may
// be re-run on an unmodified chain and accumulate nothing across calls.
func Validate(ctx context.Context, entry *stage.Descriptor) (Chain, error) {
	logger := ctxlog.FromContext(ctx)

	head := entry.First()
	if head.Kind != stage.Source {
		logger.Debug("Validation failed: chain does not start with a source.", "head", head.Name, "kind", head.Kind.String())
		return nil, &StructuralError{Reason: MissingSource}
	}

	var visited Chain
	for current := head; current != nil; current = current.Next() {
		if prev := current.Prev(); prev != nil {
			if !legalSuccessor(prev.Kind, current.Kind) {
				logger.Debug("Validation failed: illegal stage succession.",
					"prev", prev.Name, "prev_kind", prev.Kind.String(),
					"cur", current.Name, "cur_kind", current.Kind.String())
				return nil, &StructuralError{Reason: IllegalSequence, Prev: prev.Kind, Cur: current.Kind}
			}
		}
		visited = append(visited, current)
	}

	if visited[len(visited)-1].Kind != stage.Sink {
		logger.Debug("Validation failed: chain does not end with a sink.", "tail", visited[len(visited)-1].Name)
		return nil, &StructuralError{Reason: MissingSink}
	}

	logger.Debug("Chain validated.", "stage_count", len(visited))
	return visited, nil
}
