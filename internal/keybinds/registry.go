package keybinds

import (
	"cmp"
	"slices"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// multiKeyState tracks multi-key sequences (like 'gg' in vim)
	multiKeyState map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context]map[string]Action),
		multiKeyState: make(map[Context]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// inputContexts fall back to the text input bindings before the global ones.
var inputContexts = map[Context]bool{ContextSearch: true, ContextDialog: true}

// fallbacks returns the contexts consulted after context, in order.
func fallbacks(context Context) []Context {
	switch {
	case context == ContextGlobal:
		return nil
	case inputContexts[context]:
		return []Context{ContextTextInput, ContextGlobal}
	}
	return []Context{ContextGlobal}
}

// Match attempts to match a key to an action in the given context
// Returns the action and whether a match was found
// Contexts are checked in priority order: specific context -> text input -> global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	chain := append([]Context{context}, fallbacks(context)...)

	for _, ctx := range chain {
		if action, ok := r.bindings[ctx][key]; ok {
			return action, true
		}
	}
	return "", false
}

// MatchMultiKey handles multi-key sequences such as "gg".
// Returns the action, whether it's a complete match, and whether it's a partial match
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	if prevKey, hasPending := r.multiKeyState[context]; hasPending {
		sequence := prevKey + key
		delete(r.multiKeyState, context)

		if action, ok := r.Match(context, sequence); ok {
			return action, true, false
		}
		return "", false, false
	}

	if r.startsSequence(context, key) {
		r.multiKeyState[context] = key
		return "", false, true
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

// startsSequence reports whether key is the first key of a longer binding
// in context. Modifier combos such as "ctrl+u" are single keys.
func (r *Registry) startsSequence(context Context, key string) bool {
	if strings.Contains(key, "+") {
		return false
	}
	for bound := range r.bindings[context] {
		if len(bound) > len(key) && !strings.Contains(bound, "+") && strings.HasPrefix(bound, key) && !isNamedKey(bound) {
			return true
		}
	}
	return false
}

// isNamedKey reports whether key is a key name such as "enter" rather than
// a sequence of characters.
func isNamedKey(key string) bool {
	switch key {
	case "up", "down", "left", "right", "enter", "esc", "tab", "home", "end",
		"pgup", "pgdown", "backspace", "delete", "insert", "space":
		return true
	}
	return false
}

// ClearMultiKeyState clears any pending multi-key state for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	delete(r.multiKeyState, context)
}

// GetBinding returns the key(s) bound to an action in a context
func (r *Registry) GetBinding(context Context, action Action) []string {
	var keys []string

	// Check specific context
	if contextBindings, ok := r.bindings[context]; ok {
		for key, act := range contextBindings {
			if act == action {
				keys = append(keys, key)
			}
		}
	}

	// If not found, check global
	if len(keys) == 0 {
		if globalBindings, ok := r.bindings[ContextGlobal]; ok {
			for key, act := range globalBindings {
				if act == action {
					keys = append(keys, key)
				}
			}
		}
	}

	slices.Sort(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns all bindings for a context followed by the global
// ones, each group sorted by action then key
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	for _, ctx := range []Context{context, ContextGlobal} {
		start := len(bindings)
		for key, action := range r.bindings[ctx] {
			bindings = append(bindings, Binding{Key: key, Action: action, Context: ctx})
		}
		slices.SortFunc(bindings[start:], func(a, b Binding) int {
			if c := cmp.Compare(a.Action, b.Action); c != 0 {
				return c
			}
			return cmp.Compare(a.Key, b.Key)
		})
		if context == ContextGlobal {
			break
		}
	}
	return bindings
}
