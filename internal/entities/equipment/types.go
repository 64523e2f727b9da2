// Package equipment models leveled gear: armor and artifacts that carry a main
// bonus stat, grow it on every level up and unlock or reinforce sub stats at
// milestone levels.
package equipment

// Kind is the equipment family an item belongs to
type Kind string

// Equipment kinds
const (
	KindArmor    Kind = "armor"
	KindArtifact Kind = "artifact"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindArmor, KindArtifact:
		return true
	default:
		return false
	}
}

// AllKinds returns every valid kind
func AllKinds() []Kind {
	return []Kind{KindArmor, KindArtifact}
}

// KindFromString converts a string to a Kind.
// Returns the kind and true if valid, empty kind and false if invalid
func KindFromString(s string) (Kind, bool) {
	kind := Kind(s)
	if kind.IsValid() {
		return kind, true
	}
	return "", false
}
