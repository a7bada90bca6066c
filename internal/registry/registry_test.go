package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

func TestRegisterConnector_Lookup(t *testing.T) {
	r := New()
	r.RegisterConnector(&Connector{Tag: "kafka", Source: true, Handler: "h"})

	c, ok := r.Connector("kafka")
	require.True(t, ok)
	assert.True(t, c.Source)
	assert.False(t, c.Sink)
	assert.Equal(t, "h", c.Handler)

	_, ok = r.Connector("bigquery")
	assert.False(t, ok)
}

func TestRegisterConnector_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterConnector(&Connector{Tag: "kafka", Source: true})

	assert.PanicsWithValue(t, "connector with tag 'kafka' already registered", func() {
		r.RegisterConnector(&Connector{Tag: "kafka", Sink: true})
	})
}

func TestRegisterTransform_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterTransform(&TransformOp{Op: "rename"})

	assert.Panics(t, func() {
		r.RegisterTransform(&TransformOp{Op: "rename"})
	})
}

func declModel(stages ...*config.Stage) *config.Model {
	model := config.NewModel()
	for _, s := range stages {
		model.Stages[s.Name] = s
	}
	return model
}

func testRegistry() *Registry {
	r := New()
	r.RegisterConnector(&Connector{Tag: "kafka", Source: true})
	r.RegisterConnector(&Connector{Tag: "bigquery", Sink: true})
	r.RegisterTransform(&TransformOp{Op: "drop_columns"})
	return r
}

func TestValidateModel_Passes(t *testing.T) {
	model := declModel(
		&config.Stage{Name: "read", Kind: stage.Source, Connector: "kafka", Options: cty.EmptyObjectVal},
		&config.Stage{Name: "clean", Kind: stage.Transform, Op: "drop_columns", Options: cty.EmptyObjectVal},
		&config.Stage{Name: "write", Kind: stage.Sink, Connector: "bigquery", Options: cty.EmptyObjectVal},
	)

	assert.NoError(t, testRegistry().ValidateModel(context.Background(), model))
}

func TestValidateModel_UnknownConnector(t *testing.T) {
	model := declModel(
		&config.Stage{Name: "read", Kind: stage.Source, Connector: "mystery"},
	)

	err := testRegistry().ValidateModel(context.Background(), model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage 'read': unknown connector 'mystery'")
}

func TestValidateModel_CapabilityMismatch(t *testing.T) {
	// bigquery is registered sink-only; declaring it as a source must fail.
	model := declModel(
		&config.Stage{Name: "read", Kind: stage.Source, Connector: "bigquery"},
		&config.Stage{Name: "write", Kind: stage.Sink, Connector: "kafka"},
	)

	err := testRegistry().ValidateModel(context.Background(), model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connector 'bigquery' cannot act as a source")
	assert.Contains(t, err.Error(), "connector 'kafka' cannot act as a sink")
}

func TestValidateModel_UnknownTransformOp(t *testing.T) {
	model := declModel(
		&config.Stage{Name: "clean", Kind: stage.Transform, Op: "summon"},
	)

	err := testRegistry().ValidateModel(context.Background(), model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transform op 'summon'")
}

func TestValidateModel_CollectsAllMismatches(t *testing.T) {
	model := declModel(
		&config.Stage{Name: "a", Kind: stage.Source, Connector: "nope"},
		&config.Stage{Name: "b", Kind: stage.Transform, Op: "nah"},
	)

	err := testRegistry().ValidateModel(context.Background(), model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage 'a'")
	assert.Contains(t, err.Error(), "stage 'b'")
}
