package problems

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/dsl"
)

// Bridge is the crossing state. Crossed is a bit set of the people on the far side.
type Bridge struct {
	Crossed     uint8
	LampAtStart bool

	times []int
}

func (b Bridge) finished() bool {
	return int(b.Crossed) == 1<<len(b.times)-1
}

// Hash implements domain.Hasher; the crossing times are constant for a problem.
func (b Bridge) Hash() uint64 {
	h := uint64(b.Crossed) << 1
	if b.LampAtStart {
		h |= 1
	}
	return h
}

// Clone implements domain.Cloner, keeping the shared crossing times.
func (b Bridge) Clone() Bridge {
	return b
}

// Equal implements domain.Equaler.
func (b Bridge) Equal(other Bridge) bool {
	return b.Crossed == other.Crossed && b.LampAtStart == other.LampAtStart
}

func (b Bridge) String() string {
	var start, end []string
	for i, t := range b.times {
		if b.Crossed&(1<<i) != 0 {
			end = append(end, strconv.Itoa(t))
		} else {
			start = append(start, strconv.Itoa(t))
		}
	}
	lamp := "end"
	if b.LampAtStart {
		lamp = "start"
	}
	return fmt.Sprintf("start[%s] end[%s] lamp:%s", strings.Join(start, " "), strings.Join(end, " "), lamp)
}

// Crossing moves one or two people, forward with the lamp at the start or back otherwise.
type Crossing struct {
	Group   uint8
	Forward bool
	Time    int
}

func (c Crossing) String() string {
	dir := "back"
	if c.Forward {
		dir = "forward"
	}
	var people []string
	for i := 0; i < 8; i++ {
		if c.Group&(1<<i) != 0 {
			people = append(people, "#"+strconv.Itoa(i+1))
		}
	}
	return fmt.Sprintf("%s %s (%d)", dir, strings.Join(people, "+"), c.Time)
}

// BridgeProblem declares the bridge crossing puzzle for people with the given crossing times.
// Rewards are negative crossing times, so the optimal value is minus the shortest total time.
func BridgeProblem(times ...int) *dsl.Problem[Bridge] {
	var crossings []Crossing
	for i := range times {
		for _, forward := range []bool{true, false} {
			crossings = append(crossings, Crossing{Group: 1 << i, Forward: forward, Time: times[i]})
		}
		for j := i + 1; j < len(times); j++ {
			for _, forward := range []bool{true, false} {
				crossings = append(crossings, Crossing{Group: 1<<i | 1<<j, Forward: forward, Time: max(times[i], times[j])})
			}
		}
	}

	walk := action.Ground[Bridge](crossings...).
		When(func(Crossing) action.Precondition[Bridge] {
			return func(s Bridge) bool { return !s.finished() }
		}).
		When(func(c Crossing) action.Precondition[Bridge] {
			return func(s Bridge) bool {
				if c.Forward {
					return s.LampAtStart && s.Crossed&c.Group == 0
				}
				return !s.LampAtStart && s.Crossed&c.Group == c.Group
			}
		}).
		Outcome(func(c Crossing) action.Outcome[Bridge] {
			return func(s *Bridge, reward *float64) float64 {
				s.Crossed ^= c.Group
				s.LampAtStart = !c.Forward
				*reward = -float64(c.Time)
				return 1
			}
		})

	initial := Bridge{LampAtStart: true, times: append([]int(nil), times...)}
	return dsl.New(initial).Named("bridge").Add(walk)
}
