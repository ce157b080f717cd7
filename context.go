package ruffle

import "strings"

// Context is the execution context a scripted operation runs in. It
// carries the collaborators the control surface consumes: the stage that
// owns the tree and drag state, the content source, the navigator and
// load manager, and the caller's local variable scope.
type Context struct {
	Stage     *Stage
	Library   ContentSource
	Navigator Navigator
	Loads     *LoadManager

	// Version is the content's declared format version. A few operations
	// gate on it (getNextHighestDepth requires version 7).
	Version uint8

	// Locals is the calling scope's local variables, merged into load
	// requests when a navigation method is given.
	Locals map[string]Value

	// OnInstantiate, when set, runs after a dynamically created clip has
	// been inserted and its init properties applied. Hosts hang
	// constructor dispatch off this.
	OnInstantiate func(*Clip)
}

// NewContext creates a context bound to a stage, with the stage's load
// manager and a current-format version.
func NewContext(stage *Stage) *Context {
	return &Context{
		Stage:   stage,
		Loads:   stage.Loads(),
		Version: 8,
		Locals:  make(map[string]Value),
	}
}

// ResolveTarget resolves a scripted target argument to a clip: either an
// object wrapping a clip directly, or a value coerced to a string and
// walked as a target path relative to base. Returns nil when the target
// does not resolve.
func (ctx *Context) ResolveTarget(base *Clip, v Value) (*Clip, error) {
	if v.kind == valueObject {
		if c := v.o.Clip(); c != nil {
			return c, nil
		}
	}
	path, err := v.CoerceToString()
	if err != nil {
		return nil, err
	}
	return resolveTargetPath(base, path), nil
}

// resolveTargetPath walks a dotted or slash-separated target path. A
// leading slash anchors at the root; "_root" and "_level0" jump to the
// root, "_parent" and ".." step up, anything else names a child.
func resolveTargetPath(base *Clip, path string) *Clip {
	if path == "" {
		return nil
	}
	cur := base
	if strings.HasPrefix(path, "/") {
		cur = base.Root()
		path = path[1:]
	}
	for _, part := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/'
	}) {
		if cur == nil {
			return nil
		}
		switch part {
		case "_root", "_level0":
			cur = cur.Root()
		case "_parent", "..":
			cur = cur.parent
		case "this":
			// stay
		default:
			cur = cur.ChildByName(part)
		}
	}
	return cur
}
