package domain

// Hasher is implemented by state types that provide their own deterministic content hash.
// The hash must cover every field that takes part in equality.
type Hasher interface {
	Hash() uint64
}

// Equaler is implemented by state types that provide their own value equality.
type Equaler[S any] interface {
	Equal(other S) bool
}

// Cloner is implemented by state types that know how to produce an independent copy of
// themselves. Outcome branches mutate the copy, never the stored state.
type Cloner[S any] interface {
	Clone() S
}
