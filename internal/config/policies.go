package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
)

// Policies is the balance file: the xp curve and the milestone policy of each
// equipment kind. A kind listed in the file replaces its default policy
// wholesale.
type Policies struct {
	Curve progression.Curve                   `yaml:"curve"`
	Kinds map[equipment.Kind]equipment.Policy `yaml:"kinds"`
}

// DefaultPolicies returns the built in balance
func DefaultPolicies() Policies {
	kinds := make(map[equipment.Kind]equipment.Policy, len(equipment.AllKinds()))
	for _, kind := range equipment.AllKinds() {
		policy, _ := equipment.PolicyFor(kind)
		kinds[kind] = policy
	}
	return Policies{
		Curve: progression.DefaultCurve,
		Kinds: kinds,
	}
}

// LoadPolicies reads a YAML balance file over the defaults.
// An empty path or a missing file yields the defaults.
func LoadPolicies(path string) (Policies, error) {
	p := DefaultPolicies()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, errors.Wrapf(err, "reading policies %s", path)
	}

	if err := ParsePolicies(data, &p); err != nil {
		return p, errors.Wrapf(err, "parsing policies %s", path)
	}
	return p, nil
}

// ParsePolicies decodes YAML into p and validates the result
func ParsePolicies(data []byte, p *Policies) error {
	if err := yaml.Unmarshal(data, p); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid yaml")
	}
	return p.Validate()
}

// Validate checks the curve and every kind's policy
func (p Policies) Validate() error {
	vb := errors.NewValidationBuilder()

	if err := p.Curve.Validate(); err != nil {
		vb.Field("curve", errors.GetMessage(err))
	}

	kinds := make([]string, 0, len(p.Kinds))
	for kind := range p.Kinds {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, k := range kinds {
		kind := equipment.Kind(k)
		field := fmt.Sprintf("kinds.%s", kind)
		if !kind.IsValid() {
			vb.Fieldf(field, "unknown equipment kind")
			continue
		}
		if err := p.Kinds[kind].Validate(); err != nil {
			vb.Field(field, errors.GetMessage(err))
		}
	}

	return vb.Build()
}

// PolicyFor returns the configured policy of kind
func (p Policies) PolicyFor(kind equipment.Kind) (equipment.Policy, error) {
	policy, ok := p.Kinds[kind]
	if !ok {
		return equipment.PolicyFor(kind)
	}
	return policy, nil
}

// Marshal encodes the policies as YAML
func (p Policies) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode policies")
	}
	return data, nil
}
