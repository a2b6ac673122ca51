package gallery

const defaultInstance = "default"

// InstanceGuard remembers which named galleries already rendered during one
// content pass. It is not safe for concurrent use; each pass owns its own guard.
type InstanceGuard struct {
	rendered map[string]struct{}
}

func NewInstanceGuard() *InstanceGuard {
	return &InstanceGuard{rendered: make(map[string]struct{})}
}

// ShouldRender reports whether a gallery may render. Without once it always may.
// With once, the first request for a name is allowed and marks it; later ones are
// refused. An empty name counts as "default".
func (g *InstanceGuard) ShouldRender(name string, once bool) bool {
	if !once {
		return true
	}
	if name == "" {
		name = defaultInstance
	}

	if _, seen := g.rendered[name]; seen {
		return false
	}
	g.rendered[name] = struct{}{}
	return true
}
