package typesystem

// BindingOrigin classifies how a substitution entry was produced during
// unifyGenericCall, for callers of the *Traced unifier entry points that
// want to explain a binding rather than just report it.
type BindingOrigin int

const (
	// OriginReceiver is the identity seeding done by unifyReceiver.
	OriginReceiver BindingOrigin = iota
	// OriginProvider is a TypeProvider's generic-type view or explicit
	// substitution map.
	OriginProvider
	// OriginArgument is a positional parameter match, carrying the
	// argument's index.
	OriginArgument
	// OriginVararg is the collected *args/**kwargs container match.
	OriginVararg
)

// BindingTrace records where one substitution entry came from.
type BindingTrace struct {
	Variable GenericVar
	Origin   BindingOrigin
	Index    int // argument index, for OriginArgument
}

func (t BindingTrace) String() string {
	switch t.Origin {
	case OriginReceiver:
		return t.Variable.Name + " <- receiver"
	case OriginProvider:
		return t.Variable.Name + " <- type provider"
	case OriginArgument:
		return t.Variable.Name + " <- argument #" + itoa(t.Index)
	case OriginVararg:
		return t.Variable.Name + " <- variadic arguments"
	default:
		return t.Variable.Name + " <- ?"
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
