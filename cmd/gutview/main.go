package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/studiowebux/gutview/internal/config"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/export"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/keybinds"
	"github.com/studiowebux/gutview/internal/markerstore"
	"github.com/studiowebux/gutview/internal/modelio"
	"github.com/studiowebux/gutview/internal/query"
	"github.com/studiowebux/gutview/internal/settings"
	"github.com/studiowebux/gutview/internal/theme"
	"github.com/studiowebux/gutview/internal/tui"
	"github.com/studiowebux/gutview/internal/viewer"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gutview [model]",
	Short: "Gut model viewer for the terminal",
	Long: `gutview shows a linear gut model as one row per branch, with a movable
region of interest, a zoomed detail row and the list of regions and
landmarks inside the window.

Run without arguments to open the built-in human gut model, or give a model
file (.json, .jsonc, .yaml, .xml). Relative names are also looked up in
~/.gutview/models.

Examples:
  gutview                              # Built-in model
  gutview mouse.jsonc                  # Model from a file
  gutview atlas.yaml --mode overlap    # Start in overlap mode
  gutview --rtl --theme neutral        # Right to left, neutral colours
  gutview inspect atlas.yaml -q 'regions[].name'
  gutview export atlas.yaml -o gut.png
  gutview markers list
  gutview keybinds check`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runTUI(cmd, modelArg(args))
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [model]",
	Short: "Describe a model's branches, regions and landmarks",
	Long: `Print a summary of a gut model as a table, JSON or YAML.

A JMESPath expression given with --query is applied to the JSON form of the
summary. Output to a terminal is coloured unless NO_COLOR is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runInspect(cmd, modelArg(args))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [model]",
	Short: "Render the model rows and the zoom view to a PNG file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runExport(cmd, modelArg(args))
	},
}

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Manage saved marker sets",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
}

var markersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved marker sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMarkersList(cmd)
	},
}

var markersShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the markers of a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMarkersShow(cmd, args[0])
	},
}

var markersDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a marker set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMarkersDelete(cmd, args[0])
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage key bindings",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a keybinds file (default ~/.gutview/keybinds.json)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.KeybindsFile
		if len(args) > 0 {
			path = args[0]
		}
		return runKeybindsCheck(cmd, path)
	},
}

var keybindsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default bindings to ~/.gutview/keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeybindsInit(cmd)
	},
}

// Flags shared by every command
var (
	flagRTL     bool
	flagMode    string
	flagTheme   string
	flagDB      string
	flagDebug   bool
	flagMarkers string
)

// Flags for inspect
var (
	inspectOutput string
	inspectQuery  string
)

// Flags for export
var (
	exportOutput   string
	exportWidth    int
	exportBranch   string
	exportPosition float64
	exportRoiWidth float64
)

// Flags for markers list
var (
	markersModel string
)

// Flags for keybinds init
var (
	keybindsForce bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagRTL, "rtl", false, "Draw the rows right to left")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "Display mode (full/main/ext/overlap)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Colour theme ("+strings.Join(theme.Names(), "/")+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Marker database (default ~/.gutview/gutview.db)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", os.Getenv("GUTVIEW_DEBUG") == "1", "Write debug logs to ~/.gutview/debug.log")
	rootCmd.PersistentFlags().StringVarP(&flagMarkers, "markers", "m", "", "Marker set to load")

	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "text", "Output format (text/json/yaml)")
	inspectCmd.Flags().StringVarP(&inspectQuery, "query", "q", "", "JMESPath expression applied to the summary")

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "gutview.png", "Output PNG file")
	exportCmd.Flags().IntVarP(&exportWidth, "width", "w", 1200, "Image width in pixels")
	exportCmd.Flags().StringVarP(&exportBranch, "branch", "b", "main", "Branch of --position (main/ext)")
	exportCmd.Flags().Float64VarP(&exportPosition, "position", "p", 0, "Start of the region of interest")
	exportCmd.Flags().Float64Var(&exportRoiWidth, "roi-width", 0, "Width of the region of interest")

	markersListCmd.Flags().StringVar(&markersModel, "model", "", "Only list the sets of this model id")

	keybindsInitCmd.Flags().BoolVarP(&keybindsForce, "force", "f", false, "Overwrite an existing file")

	keybindsCmd.AddCommand(keybindsCheckCmd)
	keybindsCmd.AddCommand(keybindsInitCmd)

	markersCmd.AddCommand(markersListCmd)
	markersCmd.AddCommand(markersShowCmd)
	markersCmd.AddCommand(markersDeleteCmd)

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(markersCmd)
	rootCmd.AddCommand(keybindsCmd)
}

func modelArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// newLogger returns a debug logger on the log file, or a silent one. The
// returned file is nil when nothing was opened.
func newLogger() (*slog.Logger, *os.File, error) {
	if !flagDebug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	f, err := tea.LogToFile(config.LogFile, "gutview")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f, nil
}

// loadSettings reads the preferences file and applies the command line
// overrides for this session.
func loadSettings(logger *slog.Logger) (settings.Settings, error) {
	s, err := settings.Load(config.SettingsFile, logger)
	if err != nil {
		return s, err
	}
	if flagRTL {
		s.LeftToRight = false
	}
	if flagMode != "" {
		mode, err := events.ParseDisplayMode(flagMode)
		if err != nil {
			return s, err
		}
		s.DisplayMode = mode
	}
	if flagTheme != "" {
		if !theme.Valid(flagTheme) {
			return s, fmt.Errorf("unknown theme %q (expected one of %s)", flagTheme, strings.Join(theme.Names(), ", "))
		}
		s.Theme = flagTheme
	}
	return s, nil
}

// loadModel resolves name and loads it, falling back to the built-in model
// when name is empty.
func loadModel(name string) (*gut.Gut, error) {
	path, err := config.ResolveModelPath(name)
	if err != nil {
		return nil, err
	}
	return modelio.LoadOrDemo(path)
}

func openStore() (*markerstore.Manager, error) {
	path := flagDB
	if path == "" {
		path = config.DatabaseFile
	}
	return markerstore.NewManager(path)
}

// applyMarkerSet replaces the markers of g with the set named by --markers.
func applyMarkerSet(store *markerstore.Manager, g *gut.Gut, logger *slog.Logger) error {
	if flagMarkers == "" {
		return nil
	}
	set, err := store.Load(flagMarkers)
	if err != nil {
		return err
	}
	if set.ModelID != g.ID {
		logger.Warn("marker set belongs to another model", "set", set.Name, "model", set.ModelID)
	}
	if skipped := g.ReplaceMarkers(set.Markers); skipped > 0 {
		logger.Warn("markers outside the model were skipped", "set", set.Name, "skipped", skipped)
	}
	return nil
}

// runTUI starts the interactive viewer
func runTUI(cmd *cobra.Command, name string) error {
	logger, logFile, err := newLogger()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	s, err := loadSettings(logger)
	if err != nil {
		return err
	}
	g, err := loadModel(name)
	if err != nil {
		return err
	}
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile, logger)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		// The viewer works without saved marker sets.
		logger.Warn("marker store unavailable", "error", err)
		store = nil
	}
	if store != nil {
		if err := applyMarkerSet(store, g, logger); err != nil {
			store.Close()
			return err
		}
	}

	logger.Info("starting viewer", "model", g.ID, "mode", s.DisplayMode, "ltr", s.LeftToRight)
	return tui.Run(tui.Options{
		Model:        g,
		Settings:     s,
		Logger:       logger,
		Keybinds:     registry,
		Markers:      store,
		SettingsPath: config.SettingsFile,
	})
}

// runInspect prints the model summary
func runInspect(cmd *cobra.Command, name string) error {
	g, err := loadModel(name)
	if err != nil {
		return err
	}
	if flagMarkers != "" {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := applyMarkerSet(store, g, slog.New(slog.NewTextHandler(os.Stderr, nil))); err != nil {
			return err
		}
	}

	summary := query.Summarize(g)
	var result any = summary
	if inspectQuery != "" {
		if result, err = query.Search(summary, inspectQuery); err != nil {
			return err
		}
	}

	out, err := query.Format(result, inspectOutput)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	format := strings.ToLower(inspectOutput)
	if format != "text" && format != "" && w == os.Stdout && query.UseColor(os.Stdout) {
		return query.Highlight(w, out, format)
	}
	_, err = w.Write(out)
	return err
}

// runExport renders the model to a PNG file
func runExport(cmd *cobra.Command, name string) error {
	logger, logFile, err := newLogger()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	s, err := loadSettings(logger)
	if err != nil {
		return err
	}
	g, err := loadModel(name)
	if err != nil {
		return err
	}
	if flagMarkers != "" {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := applyMarkerSet(store, g, logger); err != nil {
			return err
		}
	}
	if exportWidth <= 0 {
		return fmt.Errorf("invalid width %d", exportWidth)
	}

	v, err := viewer.New(viewer.NewContext(s, logger), g, float64(exportWidth))
	if err != nil {
		return err
	}
	defer v.Close()

	if cmd.Flags().Changed("position") || cmd.Flags().Changed("roi-width") {
		branch, err := parseBranch(exportBranch)
		if err != nil {
			return err
		}
		pos := exportPosition
		if !cmd.Flags().Changed("position") {
			pos = v.RoiExtents().Position
		}
		var width *float64
		if cmd.Flags().Changed("roi-width") {
			width = &exportRoiWidth
		}
		if err := v.UpdateRoi(pos, branch, width); err != nil {
			return err
		}
	}

	if err := export.SavePNG(exportOutput, v, exportWidth); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", exportOutput, exportWidth, export.Height(v))
	return nil
}

func parseBranch(s string) (gut.Branch, error) {
	switch strings.ToLower(s) {
	case "main", "0":
		return gut.BranchMain, nil
	case "ext", "1":
		return gut.BranchExt, nil
	}
	return 0, fmt.Errorf("unknown branch %q (expected main or ext)", s)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// runMarkersList prints the saved sets
func runMarkersList(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sets, err := store.List(markersModel)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No marker sets saved")
		return nil
	}

	t := newTable("Name", "Model", "Markers", "Updated")
	for _, s := range sets {
		t.Row(s.Name, s.ModelID, fmt.Sprint(s.Count), s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

// runMarkersShow prints the markers of one set
func runMarkersShow(cmd *cobra.Command, name string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	set, err := store.Load(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", set.Name, set.ModelID)
	t := newTable("ID", "Position", "Branch", "Description")
	for _, m := range set.Markers {
		t.Row(fmt.Sprint(m.ID), fmt.Sprintf("%g", m.Position), m.Branch.String(), m.Description)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

// runMarkersDelete removes one set
func runMarkersDelete(cmd *cobra.Command, name string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted marker set %q\n", name)
	return nil
}

func runKeybindsCheck(cmd *cobra.Command, path string) error {
	cfg, err := keybinds.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	result := keybinds.NewValidator().ValidateConfig(cfg)
	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	if result.HasErrors() {
		return fmt.Errorf("%s has %d invalid bindings", path, len(result.Errors))
	}
	return nil
}

func runKeybindsInit(cmd *cobra.Command) error {
	if _, err := os.Stat(config.KeybindsFile); err == nil && !keybindsForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.KeybindsFile)
	}
	if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
		return fmt.Errorf("failed to write keybinds: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default bindings to %s\n", config.KeybindsFile)
	return nil
}
