package problems

import "github.com/aretw0/markov/pkg/dsl"

// Bakery is the cookie monster's world.
type Bakery struct {
	Visits int
	Jammed bool
	Banned bool
}

// CookieMonster declares the cookie monster problem: a fourth visit pays a bonus, robbing pays
// well but may get the monster banned, and the vending machine may jam until waited on.
func CookieMonster() *dsl.Problem[Bakery] {
	p := dsl.New(Bakery{}).Named("cookie-monster")

	notBanned := func(s Bakery) bool { return !s.Banned }

	p.Action("visit_bakery").
		When(notBanned).
		Outcome(func(s *Bakery, reward *float64) float64 {
			s.Visits = (s.Visits + 1) % 2
			*reward = 1
			if s.Visits == 0 {
				*reward += 3
			}
			return 1
		})

	p.Action("rob").
		When(notBanned).
		Outcome(func(s *Bakery, reward *float64) float64 {
			if s.Visits != 1 {
				s.Visits++
			}
			*reward = 5
			return 0.85
		}).
		Outcome(func(s *Bakery, _ *float64) float64 {
			s.Banned = true
			s.Visits = 0
			return 0.15
		})

	p.Action("vending_machine").
		When(func(s Bakery) bool { return !s.Jammed }).
		Outcome(func(_ *Bakery, reward *float64) float64 {
			*reward = 1
			return 0.5
		}).
		Outcome(func(s *Bakery, reward *float64) float64 {
			*reward = 3
			s.Jammed = true
			return 0.5
		})

	p.Action("wait").
		When(func(s Bakery) bool { return s.Jammed }).
		Outcome(func(s *Bakery, _ *float64) float64 {
			s.Jammed = false
			return 1
		})

	return p
}
