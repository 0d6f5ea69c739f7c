package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML shape a registry can be extended from, beyond the
// fixed builtin set New() seeds. Scenario files for cmd/typecheck embed
// one of these under a `classes:` key.
type Manifest struct {
	// Classes lists user classes to register, in an order where every
	// class's bases already appear earlier (or are a builtin).
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec is one class declaration in a Manifest.
type ClassSpec struct {
	// Name is the class's own name.
	Name string `yaml:"name"`

	// Bases lists nominal superclasses, by name. A name not yet
	// registered is recorded as an unresolved ancestor rather than
	// rejected outright, matching the matcher's "conservative admit"
	// treatment of unresolved classes (spec.md §4.1's matchClasses).
	Bases []string `yaml:"bases,omitempty"`

	// ABCBases lists classes this one is ABC-registered against,
	// independent of nominal inheritance.
	ABCBases []string `yaml:"abc_bases,omitempty"`

	// Members lists declared member (attribute/method) names.
	Members []string `yaml:"members,omitempty"`

	// BuiltinMembers lists member names from Members that should be
	// marked builtin (non-user-overridden); the rest default to
	// user-defined, which is what the overridesGetAttr check keys on.
	BuiltinMembers []string `yaml:"builtin_members,omitempty"`
}

// LoadManifest reads a YAML manifest file and applies it to r in order.
func LoadManifest(r *Registry, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry: reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("registry: parsing manifest %s: %w", path, err)
	}
	return ApplyManifest(r, &m)
}

// ApplyManifest registers every class in m against r, in file order.
func ApplyManifest(r *Registry, m *Manifest) error {
	for _, spec := range m.Classes {
		if _, err := r.Define(spec.Name, spec.Bases...); err != nil {
			return err
		}
		for _, base := range spec.ABCBases {
			if err := r.RegisterABC(spec.Name, base); err != nil {
				return err
			}
		}
		builtin := make(map[string]bool, len(spec.BuiltinMembers))
		for _, m := range spec.BuiltinMembers {
			builtin[m] = true
		}
		for _, member := range spec.Members {
			if err := r.DefineMember(spec.Name, member, builtin[member]); err != nil {
				return err
			}
		}
	}
	return nil
}
