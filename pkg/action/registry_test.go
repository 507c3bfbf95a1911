package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov/pkg/action"
)

func TestRegistry_AssignsSequenceNumbers(t *testing.T) {
	r := action.NewRegistry[pos]()

	added := r.Register(
		action.New[pos]("noop"),
		action.Ground[pos](up, down, left, right),
	)
	require.Len(t, added, 5)
	assert.Equal(t, 5, r.Len())

	for i, a := range r.Actions() {
		assert.Equal(t, i, a.ID().Seq)
	}
}

func TestRegistry_IdenticalPayloadsDoNotCollide(t *testing.T) {
	r := action.NewRegistry[pos]()
	def := action.New[pos]("twin")

	first := r.Register(def)
	second := r.Register(def)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	a, b := first[0].ID(), second[0].ID()
	assert.Equal(t, a.Hash, b.Hash, "same payload, same hash")
	assert.False(t, a.Equal(b), "sequence number disambiguates")
	assert.True(t, a.Equal(r.Actions()[0].ID()))
}

func TestRegistry_ConcreteActionRegisteredTwiceKeepsFirstSeq(t *testing.T) {
	r := action.NewRegistry[pos]()
	a := action.New[pos]("once").Build()

	r.Register(a)
	r.Register(a)

	actions := r.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, 0, actions[0].ID().Seq)
	assert.Equal(t, 1, actions[1].ID().Seq)
	assert.Equal(t, -1, a.ID().Seq, "registration does not mutate the declared action")
}
