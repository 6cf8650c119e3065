package app

import "github.com/Veraticus/lumina/internal/model"

// MutationKind names the operation that changed the state.
type MutationKind string

// Mutation kinds.
const (
	MutationAdd     MutationKind = "add"
	MutationDelete  MutationKind = "delete"
	MutationImport  MutationKind = "import"
	MutationProfile MutationKind = "profile"
	MutationPush    MutationKind = "push"
	MutationPull    MutationKind = "pull"
	MutationWipe    MutationKind = "wipe"
)

// Mutation describes a completed state change.
type Mutation struct {
	Kind         MutationKind
	Transactions []model.Transaction
	Profile      model.UserProfile
}

// Observer is notified after each mutation has been applied and persisted.
type Observer interface {
	OnMutate(m Mutation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Mutation)

// OnMutate calls f.
func (f ObserverFunc) OnMutate(m Mutation) {
	f(m)
}
