package shell

import "io"

// ControlCode is the enumerated outcome of a command handler,
// interpreted by the session after dispatch.
type ControlCode int

const (
	// Continue is the default: no special action.
	Continue ControlCode = iota
	// Exit terminates the session.
	Exit
	// DirChanged makes the session re-read the shared working
	// directory used in prompt rendering.
	DirChanged
	// PrintUsage makes the session print the dispatched command's
	// usage text.
	PrintUsage
	// PrintCommandList makes the session print every registered
	// command name.
	PrintCommandList
)

// Handler is the command implementation contract: it receives the
// session's output stream and the argument tokens (the command name
// itself already stripped) and returns a control code.  Handlers keep
// their internal failures to themselves; the session only ever
// observes the returned code.
type Handler func(out io.Writer, args []string) ControlCode

// Command couples a name and usage text to a handler.
type Command struct {
	Name    string
	Usage   string
	Handler Handler
}

// Registry is the ordered set of commands a session can dispatch to.
// Registration prepends, so the most recently registered command is
// searched first and shadows earlier registrations of the same name.
// The registry is populated once at startup and read-only afterwards,
// making it safe to share across sessions without locking.
type Registry struct {
	cmds []*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register prepends a command.  No uniqueness check is performed.
func (r *Registry) Register(name, usage string, h Handler) {
	r.cmds = append([]*Command{{Name: name, Usage: usage, Handler: h}}, r.cmds...)
}

// Commands returns the commands in search order (most recently
// registered first).  The returned slice must not be modified.
func (r *Registry) Commands() []*Command { return r.cmds }

// Resolve matches the first token against the registered command
// names and returns the first hit, or nil.
//
// The comparison is exact equality with both operands truncated at
// bound bytes, reproducing a bounded strncmp: two names that only
// differ past the bound are considered equal.  The bound is the input
// buffer's capacity minus one, not the command name's length, a known
// imprecision of the matching rule that is preserved deliberately.
func (r *Registry) Resolve(tokens [][]byte, bound int) *Command {
	if len(tokens) == 0 {
		return nil
	}
	for _, c := range r.cmds {
		if boundedEqual(tokens[0], c.Name, bound) {
			return c
		}
	}
	return nil
}

func boundedEqual(tok []byte, name string, bound int) bool {
	if bound < 0 {
		bound = 0
	}
	if len(tok) > bound {
		tok = tok[:bound]
	}
	if len(name) > bound {
		name = name[:bound]
	}
	return string(tok) == name
}
