package evalctx

import "github.com/flowcheck/flowcheck/internal/typesystem"

// DescriptorResolver is the default MemberResolver: it answers purely
// from whatever ClassDescriptor a type carries, with no knowledge of
// direction (read vs write members are resolved identically here; a
// host that distinguishes getters from setters supplies its own
// MemberResolver instead).
type DescriptorResolver struct{}

func (DescriptorResolver) ResolveMember(t typesystem.Type, name string, _ typesystem.MemberDirection) []typesystem.ResolutionResult {
	desc := descriptorOf(t)
	if desc == nil {
		return nil
	}
	members := desc.MemberNames(true)
	if _, ok := members[name]; !ok {
		return nil
	}
	return []typesystem.ResolutionResult{{Name: name, Found: true}}
}

func descriptorOf(t typesystem.Type) typesystem.ClassDescriptor {
	switch v := t.(type) {
	case typesystem.ClassType:
		return v.Class
	case *typesystem.Collection:
		return v.Class
	case *typesystem.Tuple:
		return v.Class
	}
	return nil
}
