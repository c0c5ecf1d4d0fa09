package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerZoomBindings(r)
	registerAnnotationBindings(r)
	registerSearchBindings(r)
	registerDialogBindings(r)
	registerMarkerSetBindings(r)
	registerHelpBindings(r)
	registerConfirmBindings(r)
	registerTextInputBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerWindowBindings binds window movement shared by the slider and
// zoom rows.
func registerWindowBindings(r *Registry, ctx Context) {
	r.RegisterMultiple(ctx, []string{"left", "h"}, ActionPanLeft)
	r.RegisterMultiple(ctx, []string{"right", "l"}, ActionPanRight)
	r.RegisterMultiple(ctx, []string{"shift+left", "H"}, ActionPanLeftFast)
	r.RegisterMultiple(ctx, []string{"shift+right", "L"}, ActionPanRightFast)
	r.RegisterMultiple(ctx, []string{"+", "="}, ActionGrowRoi)
	r.Register(ctx, "-", ActionShrinkRoi)
	r.Register(ctx, ",", ActionCursorLeft)
	r.Register(ctx, ".", ActionCursorRight)
	r.Register(ctx, "home", ActionRoiStart)
	r.Register(ctx, "end", ActionRoiEnd)
}

// registerViewerToggles binds display and marker actions shared by the
// slider, zoom and annotation panels.
func registerViewerToggles(r *Registry, ctx Context) {
	r.Register(ctx, "q", ActionQuit)
	r.Register(ctx, "tab", ActionSwitchFocus)
	r.Register(ctx, "shift+tab", ActionSwitchFocusBack)
	r.Register(ctx, "b", ActionSwitchBranch)
	r.Register(ctx, "m", ActionCycleMode)
	r.Register(ctx, "o", ActionToggleOverlap)
	r.Register(ctx, "e", ActionToggleExtension)
	r.Register(ctx, "d", ActionToggleDirection)
	r.Register(ctx, "z", ActionToggleZoom)
	r.Register(ctx, "y", ActionToggleLayers)
	r.Register(ctx, "a", ActionToggleAbsolute)
	r.Register(ctx, "t", ActionCycleTheme)
	r.Register(ctx, "r", ActionOpenRoiDialog)
	r.Register(ctx, "M", ActionAddMarker)
	r.Register(ctx, "C", ActionClearMarkers)
	r.Register(ctx, "S", ActionSaveMarkers)
	r.Register(ctx, "O", ActionLoadMarkers)
	r.Register(ctx, "c", ActionCopyRoi)
	r.Register(ctx, "/", ActionOpenSearch)
	r.Register(ctx, "?", ActionOpenHelp)
}

// registerNormalModeBindings sets up keybindings for the slider rows
func registerNormalModeBindings(r *Registry) {
	registerViewerToggles(r, ContextNormal)
	registerWindowBindings(r, ContextNormal)
}

// registerZoomBindings sets up keybindings for the zoom row
func registerZoomBindings(r *Registry) {
	registerViewerToggles(r, ContextZoom)
	registerWindowBindings(r, ContextZoom)
	r.Register(ContextZoom, "enter", ActionAddMarker)
}

// registerAnnotationBindings sets up keybindings for the annotation list
func registerAnnotationBindings(r *Registry) {
	registerViewerToggles(r, ContextAnnotations)
	r.RegisterMultiple(ContextAnnotations, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextAnnotations, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextAnnotations, "pgup", ActionPageUp)
	r.Register(ContextAnnotations, "pgdown", ActionPageDown)
	r.Register(ContextAnnotations, "g", ActionGoToTop)
	r.Register(ContextAnnotations, "G", ActionGoToBottom)
	r.Register(ContextAnnotations, "enter", ActionJumpTo)
	r.Register(ContextAnnotations, "u", ActionCopyLink)
}

// registerSearchBindings sets up keybindings for the search input
func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "esc", ActionTextCancel)
	r.Register(ContextSearch, "enter", ActionJumpTo)
	r.RegisterMultiple(ContextSearch, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextSearch, []string{"down", "ctrl+n"}, ActionNavigateDown)
}

// registerDialogBindings sets up keybindings shared by the input dialogs
func registerDialogBindings(r *Registry) {
	r.Register(ContextDialog, "esc", ActionTextCancel)
	r.Register(ContextDialog, "enter", ActionTextSubmit)
	r.RegisterMultiple(ContextDialog, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextDialog, []string{"shift+tab", "up"}, ActionPrevField)
}

// registerMarkerSetBindings sets up keybindings for the marker set picker
func registerMarkerSetBindings(r *Registry) {
	r.RegisterMultiple(ContextMarkerSets, []string{"esc", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextMarkerSets, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextMarkerSets, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextMarkerSets, "enter", ActionLoadMarkers)
	r.Register(ContextMarkerSets, "D", ActionDeleteMarkers)
}

// registerHelpBindings sets up keybindings for the help viewer
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHelp, "pgup", ActionPageUp)
	r.Register(ContextHelp, "pgdown", ActionPageDown)
}

// registerConfirmBindings sets up keybindings for confirmation prompts
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

// registerTextInputBindings sets up bindings every text input understands
func registerTextInputBindings(r *Registry) {
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert", "super+v"}, ActionTextPaste)
}
