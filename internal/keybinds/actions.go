package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the part of the viewer in which keybindings are active
type Context string

const (
	ContextGlobal      Context = "global"      // Available everywhere
	ContextNormal      Context = "normal"      // Slider rows focused
	ContextZoom        Context = "zoom"        // Zoom row focused
	ContextAnnotations Context = "annotations" // Annotation list focused
	ContextSearch      Context = "search"      // Fuzzy search input
	ContextDialog      Context = "dialog"      // ROI, marker and marker set dialogs
	ContextMarkerSets  Context = "marker_sets" // Saved marker set picker
	ContextHelp        Context = "help"        // Help viewer
	ContextConfirm     Context = "confirm"     // Confirmation prompts
	ContextTextInput   Context = "text_input"  // Any text input
)

// AllContexts lists every context in the order they appear in help output.
var AllContexts = []Context{
	ContextGlobal, ContextNormal, ContextZoom, ContextAnnotations, ContextSearch,
	ContextDialog, ContextMarkerSets, ContextHelp, ContextConfirm, ContextTextInput,
}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Window movement
	ActionPanLeft      Action = "pan_left"       // Move the window one step left
	ActionPanRight     Action = "pan_right"      // Move the window one step right
	ActionPanLeftFast  Action = "pan_left_fast"  // Move the window a tenth of the branch left
	ActionPanRightFast Action = "pan_right_fast" // Move the window a tenth of the branch right
	ActionGrowRoi      Action = "grow_roi"       // Widen the window
	ActionShrinkRoi    Action = "shrink_roi"     // Narrow the window
	ActionCursorLeft   Action = "cursor_left"    // Move the cursor left inside the window
	ActionCursorRight  Action = "cursor_right"   // Move the cursor right inside the window
	ActionRoiStart     Action = "roi_start"      // Move the window to the branch start
	ActionRoiEnd       Action = "roi_end"        // Move the window to the branch end

	// Branches and display
	ActionSwitchBranch    Action = "switch_branch"     // Make the other branch current
	ActionCycleMode       Action = "cycle_mode"        // full -> main -> ext -> overlap
	ActionToggleOverlap   Action = "toggle_overlap"    // Enter or leave overlap mode
	ActionToggleExtension Action = "toggle_extension"  // Switch between main and ext modes
	ActionToggleDirection Action = "toggle_direction"  // Left-to-right or right-to-left
	ActionToggleZoom      Action = "toggle_zoom"       // Show or hide the zoom row
	ActionToggleLayers    Action = "toggle_layers"     // Show or hide region layers
	ActionToggleAbsolute  Action = "toggle_absolute"   // Positions or percentages
	ActionCycleTheme      Action = "cycle_theme"       // Next colour palette
	ActionSwitchFocus     Action = "switch_focus"      // Sliders -> zoom -> annotations
	ActionSwitchFocusBack Action = "switch_focus_back" // Reverse of switch_focus

	// ROI and markers
	ActionOpenRoiDialog Action = "open_roi_dialog" // Edit position, width and branch
	ActionAddMarker     Action = "add_marker"      // Add a marker at the cursor
	ActionClearMarkers  Action = "clear_markers"   // Remove every marker
	ActionSaveMarkers   Action = "save_markers"    // Save markers as a named set
	ActionLoadMarkers   Action = "load_markers"    // Open the marker set picker
	ActionDeleteMarkers Action = "delete_markers"  // Delete the selected marker set
	ActionCopyRoi       Action = "copy_roi"        // Copy the ROI to the clipboard
	ActionCopyLink      Action = "copy_link"       // Copy the ontology link of an annotation
	ActionJumpTo        Action = "jump_to"         // Centre the window on an annotation

	// Navigation in lists
	ActionNavigateUp   Action = "navigate_up"   // Move up one item
	ActionNavigateDown Action = "navigate_down" // Move down one item
	ActionPageUp       Action = "page_up"       // Move up one page
	ActionPageDown     Action = "page_down"     // Move down one page
	ActionGoToTop      Action = "go_to_top"     // Go to top
	ActionGoToBottom   Action = "go_to_bottom"  // Go to bottom

	// Modal launchers
	ActionOpenHelp   Action = "open_help"   // Open help viewer
	ActionOpenSearch Action = "open_search" // Open fuzzy search

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input
	ActionTextPaste  Action = "text_paste"  // Paste from clipboard
	ActionNextField  Action = "next_field"  // Next dialog field
	ActionPrevField  Action = "prev_field"  // Previous dialog field

	// Modal actions
	ActionCloseModal Action = "close_modal" // Close current modal
	ActionConfirm    Action = "confirm"     // Confirm action (y/Y)
	ActionCancel     Action = "cancel"      // Cancel action (n/N)

	ActionNoOp Action = "noop" // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionPanLeft:         {ActionPanLeft, "Move window left", "Window"},
	ActionPanRight:        {ActionPanRight, "Move window right", "Window"},
	ActionPanLeftFast:     {ActionPanLeftFast, "Move window left (fast)", "Window"},
	ActionPanRightFast:    {ActionPanRightFast, "Move window right (fast)", "Window"},
	ActionGrowRoi:         {ActionGrowRoi, "Widen window", "Window"},
	ActionShrinkRoi:       {ActionShrinkRoi, "Narrow window", "Window"},
	ActionCursorLeft:      {ActionCursorLeft, "Cursor left", "Window"},
	ActionCursorRight:     {ActionCursorRight, "Cursor right", "Window"},
	ActionRoiStart:        {ActionRoiStart, "Window to branch start", "Window"},
	ActionRoiEnd:          {ActionRoiEnd, "Window to branch end", "Window"},
	ActionSwitchBranch:    {ActionSwitchBranch, "Switch branch", "Display"},
	ActionCycleMode:       {ActionCycleMode, "Cycle display mode", "Display"},
	ActionToggleOverlap:   {ActionToggleOverlap, "Toggle overlap mode", "Display"},
	ActionToggleExtension: {ActionToggleExtension, "Toggle main/ext mode", "Display"},
	ActionToggleDirection: {ActionToggleDirection, "Toggle direction", "Display"},
	ActionToggleZoom:      {ActionToggleZoom, "Toggle zoom row", "Display"},
	ActionToggleLayers:    {ActionToggleLayers, "Toggle layers", "Display"},
	ActionToggleAbsolute:  {ActionToggleAbsolute, "Positions or percentages", "Display"},
	ActionCycleTheme:      {ActionCycleTheme, "Next theme", "Display"},
	ActionSwitchFocus:     {ActionSwitchFocus, "Next panel", "Display"},
	ActionSwitchFocusBack: {ActionSwitchFocusBack, "Previous panel", "Display"},
	ActionOpenRoiDialog:   {ActionOpenRoiDialog, "Edit ROI", "ROI"},
	ActionAddMarker:       {ActionAddMarker, "Add marker at cursor", "Markers"},
	ActionClearMarkers:    {ActionClearMarkers, "Clear markers", "Markers"},
	ActionSaveMarkers:     {ActionSaveMarkers, "Save marker set", "Markers"},
	ActionLoadMarkers:     {ActionLoadMarkers, "Load marker set", "Markers"},
	ActionDeleteMarkers:   {ActionDeleteMarkers, "Delete marker set", "Markers"},
	ActionCopyRoi:         {ActionCopyRoi, "Copy ROI", "ROI"},
	ActionCopyLink:        {ActionCopyLink, "Copy ontology link", "Annotations"},
	ActionJumpTo:          {ActionJumpTo, "Jump to annotation", "Annotations"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionOpenHelp:        {ActionOpenHelp, "Help", "Information"},
	ActionOpenSearch:      {ActionOpenSearch, "Search annotations", "Information"},
	ActionTextSubmit:      {ActionTextSubmit, "Submit", "Input"},
	ActionTextCancel:      {ActionTextCancel, "Cancel", "Input"},
	ActionTextPaste:       {ActionTextPaste, "Paste", "Input"},
	ActionNextField:       {ActionNextField, "Next field", "Input"},
	ActionPrevField:       {ActionPrevField, "Previous field", "Input"},
	ActionCloseModal:      {ActionCloseModal, "Close", "Modal"},
	ActionConfirm:         {ActionConfirm, "Confirm", "Modal"},
	ActionCancel:          {ActionCancel, "Cancel", "Modal"},
	ActionNoOp:            {ActionNoOp, "Ignore key", "Other"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the viewer handles.
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuit || action == ActionQuitForce
}
