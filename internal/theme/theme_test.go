package theme

import "testing"

func TestGet(t *testing.T) {
	for _, name := range Names() {
		p, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q): %v", name, err)
			continue
		}
		if p.Roi == "" || p.Cursor == "" || p.Gut == "" {
			t.Errorf("palette %q is missing colours", name)
		}
	}

	if _, err := Get("sepia"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
	if MustGet("sepia").Name != DefaultName {
		t.Error("MustGet did not fall back to the default theme")
	}
}

func TestNext(t *testing.T) {
	names := Names()
	name := DefaultName
	for range names {
		name = Next(name)
	}
	if name != DefaultName {
		t.Errorf("cycling %d times ended on %q", len(names), name)
	}
	if !Valid(Next("unknown")) {
		t.Error("Next on an unknown theme returned an invalid name")
	}
}
