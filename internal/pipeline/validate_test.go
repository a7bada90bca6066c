package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeweld/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

func src(name string) *stage.Descriptor {
	return stage.NewSource(name, "kafka", cty.EmptyObjectVal, nil)
}

func tr(name string) *stage.Descriptor {
	return stage.NewTransform(name, cty.EmptyObjectVal, nil)
}

func snk(name string) *stage.Descriptor {
	return stage.NewSink(name, "bigquery", cty.EmptyObjectVal, nil)
}

func TestValidate_MinimalChain(t *testing.T) {
	a := src("read")
	tail := a.Then(snk("write"))

	chain, err := Validate(context.Background(), tail)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Same(t, a, chain[0])
	assert.Same(t, tail, chain[1])
}

func TestValidate_TransformOnlyChain_MissingSource(t *testing.T) {
	tail := tr("a").Then(tr("b")).Then(tr("c"))

	chain, err := Validate(context.Background(), tail)
	assert.Nil(t, chain)

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, MissingSource, structural.Reason)
	assert.EqualError(t, structural, "pipeline must start with a source stage")
}

func TestValidate_NoTerminalSink_MissingSink(t *testing.T) {
	tail := src("read").Then(tr("clean"))

	_, err := Validate(context.Background(), tail)

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, MissingSink, structural.Reason)
	assert.EqualError(t, structural, "pipeline must end with a sink stage")
}

func TestValidate_SingleSource_MissingSink(t *testing.T) {
	_, err := Validate(context.Background(), src("read"))

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, MissingSink, structural.Reason)
}

func TestValidate_StageAfterSink_IllegalSequence(t *testing.T) {
	// s1 -> k1 -> t1: the sink has a successor, which no rule permits.
	tail := src("s1").Then(snk("k1")).Then(tr("t1"))

	_, err := Validate(context.Background(), tail)

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, IllegalSequence, structural.Reason)
	assert.Equal(t, stage.Sink, structural.Prev)
	assert.Equal(t, stage.Transform, structural.Cur)
	assert.EqualError(t, structural, "invalid pipeline sequence: sink cannot be followed by transform")
}

func TestValidate_SourceFollowedBySource_IllegalSequence(t *testing.T) {
	tail := src("a").Then(src("b")).Then(snk("c"))

	_, err := Validate(context.Background(), tail)

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, IllegalSequence, structural.Reason)
	assert.Equal(t, stage.Source, structural.Prev)
	assert.Equal(t, stage.Source, structural.Cur)
}

func TestValidate_ArbitraryTransformCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 20} {
		t.Run(fmt.Sprintf("transforms=%d", n), func(t *testing.T) {
			head := src("read")
			tail := head
			for i := 0; i < n; i++ {
				tail = tail.Then(tr(fmt.Sprintf("t%d", i)))
			}
			tail = tail.Then(snk("write"))

			chain, err := Validate(context.Background(), tail)
			require.NoError(t, err)
			require.Len(t, chain, n+2)
			assert.Same(t, head, chain[0])
			assert.Same(t, tail, chain[len(chain)-1])
			for i := 1; i < len(chain); i++ {
				assert.Same(t, chain[i], chain[i-1].Next())
			}
		})
	}
}

func TestValidate_AnyEntryPointResolvesHead(t *testing.T) {
	a := src("read")
	b := tr("clean")
	c := snk("write")
	a.Then(b).Then(c)

	for _, entry := range []*stage.Descriptor{a, b, c} {
		chain, err := Validate(context.Background(), entry)
		require.NoError(t, err, "entry %q", entry.Name)
		require.Len(t, chain, 3)
		assert.Same(t, a, chain[0])
	}
}

func TestValidate_IsRerunnable(t *testing.T) {
	tail := src("read").Then(tr("clean")).Then(snk("write"))
	ctx := context.Background()

	first, err := Validate(ctx, tail)
	require.NoError(t, err)
	second, err := Validate(ctx, tail)
	require.NoError(t, err)

	// A second run over the unmodified chain must yield the same sequence,
	// not accumulate onto state from the first run.
	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestValidate_FailsFastOnFirstViolation(t *testing.T) {
	// Both an illegal adjacency (sink -> transform) and a missing terminal
	// sink are present; the walk reports the adjacency first.
	tail := src("a").Then(snk("b")).Then(tr("c")).Then(tr("d"))

	_, err := Validate(context.Background(), tail)

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, IllegalSequence, structural.Reason)
}
