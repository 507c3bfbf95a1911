package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

func TestPolicy_Lookup(t *testing.T) {
	rob := domain.ActionID{Seq: 1, Hash: 11, Label: "rob"}
	p := policy.New([]*domain.ActionID{&rob, nil})

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 1, p.Decided())

	id, ok := p.Action(0)
	assert.True(t, ok)
	assert.Equal(t, rob, id)

	_, ok = p.Action(1)
	assert.False(t, ok, "no enabled action")
}

func TestPolicy_IsImmutable(t *testing.T) {
	rob := domain.ActionID{Seq: 1, Label: "rob"}
	choices := []*domain.ActionID{&rob}
	p := policy.New(choices)

	rob.Label = "changed"
	choices[0] = nil
	p.Actions()[0].Label = "mutated copy"

	id, ok := p.Action(0)
	assert.True(t, ok)
	assert.Equal(t, "rob", id.Label)
}

func TestPolicy_OutOfRangePanics(t *testing.T) {
	p := policy.New(nil)
	assert.Panics(t, func() { p.Action(0) })
}
