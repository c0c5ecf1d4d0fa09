package keybinds

import (
	"fmt"
	"slices"
	"strings"
)

// Issue kinds reported by the validator.
const (
	IssueInvalid = "invalid"
	IssueWarning = "warning"
)

// ValidationError describes one problem with a binding
type ValidationError struct {
	Type    string
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "Errors (%d):\n", len(r.Errors))
		for _, err := range r.Errors {
			fmt.Fprintf(&sb, "  - %s\n", err.Error())
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&sb, "Warnings (%d):\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", warn.Error())
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) warn(ctx Context, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Type:    IssueWarning,
		Context: ctx,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validator checks a registry for bindings that will not behave as the
// user expects.
type Validator struct {
	// reserved maps keys to the only action they may carry
	reserved map[string]Action
}

// NewValidator creates a validator with ctrl+c reserved for force quit
func NewValidator() *Validator {
	return &Validator{
		reserved: map[string]Action{"ctrl+c": ActionQuitForce},
	}
}

// ValidateRegistry reports reserved keys bound to other actions, single keys
// hidden by a sequence and bindings that shadow a fallback context.
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{}
	for _, ctx := range AllContexts {
		bindings := registry.bindings[ctx]
		for _, key := range sortedKeys(bindings) {
			action := bindings[key]
			if want, ok := v.reserved[key]; ok && action != want {
				result.warn(ctx, key, "reserved for %s, bound to %s", want, action)
			}
			if registry.startsSequence(ctx, key) {
				result.warn(ctx, key, "also starts a key sequence, single binding is unreachable")
			}
			for _, parent := range fallbacks(ctx) {
				if other, ok := registry.bindings[parent][key]; ok && other != action {
					result.warn(ctx, key, "shadows %s binding (%s -> %s)", parent, other, action)
					break
				}
			}
		}
	}
	return result
}

// ValidateConfig applies cfg on top of the defaults and validates the
// result. Malformed entries are reported as errors.
func (v *Validator) ValidateConfig(cfg *Config) *ValidationResult {
	registry := NewDefaultRegistry()
	err := ApplyConfig(registry, cfg)
	result := v.ValidateRegistry(registry)
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			result.Errors = append(result.Errors, ValidationError{Type: IssueInvalid, Message: line})
		}
	}
	return result
}

func sortedKeys(m map[string]Action) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}
	return nil
}

// ValidateAction checks if an action string names a known action
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action: %s", actionStr)
	}
	return nil
}
