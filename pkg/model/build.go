package model

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/domain"
)

// Build explores every state reachable from initial under the given action definitions and
// returns the frozen model.
//
// Definitions are registered in order, which fixes action sequence numbers and therefore the
// order of Actions(i). Exploration pops the most recently discovered state first. The only
// error is the context's, checked once per explored state.
func Build[S any](ctx context.Context, initial S, defs []action.Definition[S], opts ...Option[S]) (*Model[S], error) {
	cfg := config[S]{
		hasher: defaultHasher[S],
		equal:  defaultEqual[S],
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry := action.NewRegistry[S]()
	actions := registry.Register(defs...)

	start := time.Now()
	m := &Model[S]{
		buckets: make(map[uint64][]int),
		hasher:  cfg.hasher,
		equal:   cfg.equal,
	}

	b := &builder[S]{ctx: ctx, model: m, cfg: &cfg}
	b.add(initial, m.hasher(initial))

	var edges []domain.Transition
	for len(b.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		from := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		state := m.states[from]

		for _, a := range actions {
			if !a.Enabled(state) {
				continue
			}
			for _, succ := range a.Successors(state) {
				h := m.hasher(succ.State)
				to, ok := m.lookup(h, succ.State)
				if !ok {
					to = b.add(succ.State, h)
				}
				edges = append(edges, domain.Transition{
					From:        from,
					To:          to,
					Action:      a.ID(),
					Probability: succ.Probability,
					Reward:      succ.Reward,
				})
			}
		}
	}

	m.adjacency = group(len(m.states), edges)
	m.transitions = len(edges)

	elapsed := time.Since(start)
	cfg.logger.Info("model built",
		"states", len(m.states),
		"transitions", len(edges),
		"actions", len(actions),
		"duration", elapsed,
	)
	if cfg.hooks.OnModelBuilt != nil {
		cfg.hooks.OnModelBuilt(ctx, &domain.ModelEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventModelBuilt},
			States:      len(m.states),
			Transitions: len(edges),
			Duration:    elapsed,
		})
	}

	return m, nil
}

type builder[S any] struct {
	ctx   context.Context
	model *Model[S]
	cfg   *config[S]
	stack []int
}

// add appends a newly discovered state and schedules it for exploration.
func (b *builder[S]) add(state S, h uint64) int {
	m := b.model
	index := len(m.states)
	if b.cfg.limit > 0 && index >= b.cfg.limit {
		panic(fmt.Errorf("%w: more than %d states", domain.ErrStateLimit, b.cfg.limit))
	}

	m.states = append(m.states, state)
	m.buckets[h] = append(m.buckets[h], index)
	b.stack = append(b.stack, index)

	if len(m.buckets[h]) > 1 {
		b.cfg.logger.Warn("state hash collision", "hash", h, "index", index)
	}
	b.cfg.logger.Debug("state discovered", "index", index)
	if b.cfg.hooks.OnStateDiscovered != nil {
		b.cfg.hooks.OnStateDiscovered(b.ctx, &domain.StateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateDiscovered},
			Index:     index,
			Label:     m.Label(index),
		})
	}
	return index
}

func (m *Model[S]) lookup(h uint64, state S) (int, bool) {
	for _, i := range m.buckets[h] {
		if m.equal(m.states[i], state) {
			return i, true
		}
	}
	return 0, false
}

// group partitions transitions by origin state, then by action in registration order.
func group(states int, edges []domain.Transition) [][]domain.ActionTransitions {
	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(a, b domain.Transition) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.Action.Seq - b.Action.Seq
	})

	adjacency := make([][]domain.ActionTransitions, states)
	for _, t := range sorted {
		list := adjacency[t.From]
		if n := len(list); n > 0 && list[n-1].Action.Equal(t.Action) {
			list[n-1].Transitions = append(list[n-1].Transitions, t)
			continue
		}
		adjacency[t.From] = append(list, domain.ActionTransitions{
			Action:      t.Action,
			Transitions: []domain.Transition{t},
		})
	}
	return adjacency
}
