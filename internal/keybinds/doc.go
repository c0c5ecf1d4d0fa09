/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within contexts. A context is the part of the viewer
that has focus: the slider rows (normal), the zoom row, the annotation list,
or one of the modal views (search, dialog, marker sets, help, confirm).

# Context Hierarchy

Match looks a key up in the focused context first. The search and dialog
contexts then fall back to text_input, and every context finally falls back
to global. A binding in a specific context shadows the global one.

# Components

Registry (registry.go):
  - Context-aware key matching
  - Multi-key sequences such as "gg", detected from the bound keys

Validator (validator.go):
  - Unknown actions and malformed keys
  - Bindings that shadow a fallback context (warnings)
  - Reserved key rebindings (warnings)
  - Single keys hidden by a sequence that starts with them (warnings)

Defaults (defaults.go):
  - The bindings used when no keybinds.json exists

# Configuration File Format

Overrides live in ~/.gutview/keybinds.json. Each section maps a key to an
action name. Comments and trailing commas are accepted:

	{
	  // pan with w and x
	  "normal": {
	    "w": "pan_left",
	    "x": "pan_right",
	  },
	  "zoom": {
	    "space": "add_marker"
	  }
	}

# Reserved Keys

ctrl+c always force quits. Binding it to anything else, in any context,
produces a warning. LoadOrDefault logs warnings; `gutview keybinds check`
prints them.

# Example Usage

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile, logger)
	if err != nil {
		return err
	}
	if action, ok := registry.Match(keybinds.ContextNormal, msg.String()); ok {
		// handle action
	}
*/
package keybinds
