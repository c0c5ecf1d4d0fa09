package keybinds

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatch(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		found   bool
	}{
		{ContextNormal, "h", ActionPanLeft, true},
		{ContextNormal, "o", ActionToggleOverlap, true},
		{ContextZoom, "enter", ActionAddMarker, true},
		{ContextAnnotations, "enter", ActionJumpTo, true},
		{ContextDialog, "ctrl+v", ActionTextPaste, true},
		{ContextSearch, "shift+insert", ActionTextPaste, true},
		{ContextNormal, "ctrl+c", ActionQuitForce, true},
		{ContextHelp, "ctrl+c", ActionQuitForce, true},
		{ContextNormal, "ctrl+v", "", false},
		{ContextConfirm, "h", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.context)+"/"+tt.key, func(t *testing.T) {
			got, found := r.Match(tt.context, tt.key)
			if got != tt.want || found != tt.found {
				t.Errorf("Match() = %q, %v, want %q, %v", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestMatchMultiKey(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextAnnotations, "gg", ActionGoToTop)
	r.Register(ContextAnnotations, "G", ActionGoToBottom)

	if _, complete, partial := r.MatchMultiKey(ContextAnnotations, "g"); complete || !partial {
		t.Fatalf("first g: complete=%v partial=%v", complete, partial)
	}
	action, complete, partial := r.MatchMultiKey(ContextAnnotations, "g")
	if action != ActionGoToTop || !complete || partial {
		t.Errorf("second g = %q complete=%v partial=%v", action, complete, partial)
	}

	r.MatchMultiKey(ContextAnnotations, "g")
	if _, complete, _ := r.MatchMultiKey(ContextAnnotations, "x"); complete {
		t.Error("gx should not match")
	}
	if action, complete, _ := r.MatchMultiKey(ContextAnnotations, "G"); action != ActionGoToBottom || !complete {
		t.Errorf("G after a broken sequence = %q, %v", action, complete)
	}

	r.MatchMultiKey(ContextAnnotations, "g")
	r.ClearMultiKeyState(ContextAnnotations)
	if action, _, _ := r.MatchMultiKey(ContextAnnotations, "G"); action != ActionGoToBottom {
		t.Errorf("G after clear = %q", action)
	}
}

func TestListBindings(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextNormal, "right", ActionPanRight)
	r.Register(ContextNormal, "l", ActionPanRight)
	r.Register(ContextNormal, "h", ActionPanLeft)

	got := r.ListBindings(ContextNormal)
	want := []Binding{
		{Key: "h", Action: ActionPanLeft, Context: ContextNormal},
		{Key: "l", Action: ActionPanRight, Context: ContextNormal},
		{Key: "right", Action: ActionPanRight, Context: ContextNormal},
		{Key: "ctrl+c", Action: ActionQuitForce, Context: ContextGlobal},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bindings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("binding %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if n := len(r.ListBindings(ContextGlobal)); n != 1 {
		t.Errorf("global bindings listed %d times", n)
	}
	if s := r.GetBindingString(ContextNormal, ActionPanRight); s != "l, right" {
		t.Errorf("GetBindingString = %q", s)
	}
	if s := r.GetBindingString(ContextNormal, ActionCopyRoi); s != "unbound" {
		t.Errorf("GetBindingString = %q", s)
	}
}

func TestLoadConfig_JSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	data := `{
  // swap panning to w/x
  "version": "1.0",
  "normal": {
    "w": "pan_left",
    "x": "pan_right", // trailing commas are fine too
  },
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadOrDefault(path, nil)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if a, _ := r.Match(ContextNormal, "w"); a != ActionPanLeft {
		t.Errorf("w = %q, want pan_left", a)
	}
	if a, _ := r.Match(ContextNormal, "h"); a != ActionPanLeft {
		t.Errorf("default h binding lost: %q", a)
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	r, err := LoadOrDefault(filepath.Join(dir, "missing.json"), nil)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if a, _ := r.Match(ContextNormal, "q"); a != ActionQuit {
		t.Errorf("defaults not loaded: %q", a)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"normal": {"q": "launch_rockets"}}`), 0o644)
	if _, err := LoadOrDefault(bad, nil); err == nil {
		t.Error("unknown action accepted")
	}

	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte(`{"normal": `), 0o644)
	if _, err := LoadOrDefault(broken, nil); err == nil {
		t.Error("malformed file accepted")
	}
}

func TestLoadOrDefault_LogsWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	data := `{
  // ask before quitting from the annotation list
  "annotations": {"ctrl+c": "quit"}
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := LoadOrDefault(path, logger); err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"level=WARN", "context=annotations", "key=ctrl+c", "reserved for quit_force"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	if _, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"), logger); err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("defaults logged warnings:\n%s", buf.String())
	}
}

func TestExportDefaults_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	if err := CreateExampleConfig(path); err != nil {
		t.Fatalf("CreateExampleConfig: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	r := NewRegistry()
	if err := ApplyConfig(r, cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	defaults := NewDefaultRegistry()
	for _, ctx := range AllContexts {
		for _, b := range defaults.ListBindings(ctx) {
			if a, ok := r.Match(b.Context, b.Key); !ok || a != b.Action {
				t.Errorf("%s/%s = %q, want %q", b.Context, b.Key, a, b.Action)
			}
		}
	}
}
