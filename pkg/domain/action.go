package domain

import "fmt"

// ActionID identifies a registered action.
//
// Hash is derived from the action payload and Seq is the registration sequence number, so two
// structurally identical payloads registered twice never collide. Label is the display form of
// the payload; it is derived from the same payload as Hash and carries no extra identity.
type ActionID struct {
	Seq   int    `json:"seq" yaml:"seq"`
	Hash  uint64 `json:"hash" yaml:"hash"`
	Label string `json:"label" yaml:"label"`
}

// Equal reports whether both identities refer to the same registered action.
func (id ActionID) Equal(other ActionID) bool {
	return id.Hash == other.Hash && id.Seq == other.Seq
}

func (id ActionID) String() string {
	return fmt.Sprintf("%s#%d", id.Label, id.Seq)
}
