package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwidgets/internal/logging"
	"github.com/goliatone/go-formwidgets/pkg/form"
	"github.com/goliatone/go-formwidgets/pkg/guide"
	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/prompt"
)

// Command flags
var (
	themePath    string
	themeVariant string
	workDir      string
	seedPath     string
	outputPath   string
	outputFormat string
	guideFlavor  string
	guideWidth   int
	showPreview  bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(typesCmd)
}

// runCmd drives a row document as a full-screen form.
var runCmd = &cobra.Command{
	Use:   "run <rows-file>",
	Short: "Run a row document as an interactive form",
	Long: `Assemble a YAML or JSON row document and run it as a full-screen
terminal form. Tab moves between widgets, enter commits, ctrl+c or esc
leaves the form. The values held by the widgets on exit are written as
JSON or YAML.`,
	Example: `  # Run a row document and print the values
  formwidgets run rows.yaml

  # Pre-populate from an earlier session and save the result
  formwidgets run rows.yaml --seed values.json --output values.json

  # Style the form from a theme manifest
  formwidgets run rows.yaml --theme brand.yaml --variant dark`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&themePath, "theme", "", "Theme manifest file (YAML)")
	runCmd.Flags().StringVar(&themeVariant, "variant", "", "Theme variant name")
	runCmd.Flags().StringVar(&workDir, "work-dir", "", "Directory for upload artifacts (system temp dir if empty)")
	runCmd.Flags().StringVar(&seedPath, "seed", "", "Values file used to pre-populate the form")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write collected values to file (stdout if empty)")
	runCmd.Flags().StringVar(&outputFormat, "format", "json", "Output format (json, yaml)")
}

func runRun(cmd *cobra.Command, args []string) error {
	f, err := buildForm(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	values, err := form.Run(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return writeValues(values)
}

// fillCmd walks a row document as a sequence of line prompts.
var fillCmd = &cobra.Command{
	Use:   "fill <rows-file>",
	Short: "Fill a row document over line prompts",
	Long: `Walk a row document top to bottom, asking one question per widget.

Useful over SSH or in scripts where a full-screen form is unwelcome. The
collected values are checked against each widget's output schema before
anything is written.`,
	Example: `  # Answer one prompt per widget
  formwidgets fill rows.yaml

  # Keep the current answers from a previous session as defaults
  formwidgets fill rows.yaml --seed values.json -o values.json`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVar(&workDir, "work-dir", "", "Directory for upload artifacts (system temp dir if empty)")
	fillCmd.Flags().StringVar(&seedPath, "seed", "", "Values file used to pre-populate the prompts")
	fillCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write collected values to file (stdout if empty)")
	fillCmd.Flags().StringVar(&outputFormat, "format", "json", "Output format (json, yaml)")
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := buildForm(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	session := prompt.New(prompt.WithLogger(logging.GetLogger()))
	if err := session.Fill(ctx, f); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Println("Aborted, nothing written.")
			return nil
		}
		return err
	}

	if err := f.Validate(); err != nil {
		return fmt.Errorf("collected values: %w", err)
	}
	return writeValues(f.Collect())
}

// guideCmd publishes the built-in widget guide.
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Publish the widget guide",
	Long: `Generate the guide that documents every registered widget type with
a sample cell, the shape of the value it collects and a checked example
value. Markdown suits READMEs; the mdx flavor targets Docusaurus pages.`,
	Example: `  # Print the guide as markdown
  formwidgets guide

  # Render it for the terminal
  formwidgets guide --preview

  # Write the Docusaurus flavor
  formwidgets guide --flavor mdx --output docs/widgets.mdx`,
	Args: cobra.NoArgs,
	RunE: runGuide,
}

func init() {
	guideCmd.Flags().StringVar(&guideFlavor, "flavor", "", "Guide flavor (markdown, mdx)")
	guideCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the guide to file (stdout if empty)")
	guideCmd.Flags().BoolVar(&showPreview, "preview", false, "Render markdown for the terminal")
	guideCmd.Flags().IntVar(&guideWidth, "width", 0, "Preview wrap width (0 uses the default)")
}

func runGuide(cmd *cobra.Command, args []string) error {
	gen, err := guide.New()
	if err != nil {
		return err
	}

	flavor := firstOf(guideFlavor, cfg.Guide.Flavor, string(guide.Markdown))
	out, err := gen.Generate(guide.Flavor(flavor))
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write guide: %w", err)
		}
		fmt.Printf("Guide written to %s\n", outputPath)
		return nil
	}

	if showPreview {
		width := guideWidth
		if width == 0 {
			width = cfg.Guide.Width
		}
		rendered, err := guide.Preview(out, width)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	}

	fmt.Print(out)
	return nil
}

// typesCmd lists the default registry.
var typesCmd = &cobra.Command{
	Use:   "types [name]",
	Short: "List registered widget types",
	Long: `List the widget types in the default registry.

With a name argument, show that type's guide entry: what it does, the
shape of the value it collects and a sample cell. Unknown names get a
closest-match suggestion.`,
	Example: `  # List every type
  formwidgets types

  # Inspect one type
  formwidgets types SliderInput`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	reg := inputs.DefaultRegistry()

	if len(args) == 0 {
		for _, name := range reg.List() {
			fmt.Println(name)
		}
		return nil
	}

	name := args[0]
	if !reg.Has(name) {
		if suggestion := reg.Suggest(name); suggestion != "" {
			return fmt.Errorf("unknown type %q, did you mean %q?", name, suggestion)
		}
		return fmt.Errorf("unknown type %q", name)
	}

	gen, err := guide.New()
	if err != nil {
		return err
	}
	entries, err := gen.Entries()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Type != name {
			continue
		}
		fmt.Println(entry.Type)
		fmt.Println(entry.Doc)
		fmt.Printf("Value shape: %s\n", entry.Output)
		fmt.Println("\nSample cell:")
		fmt.Println(entry.Config)
		return nil
	}

	// Registered but without a guide entry, likely a custom type.
	fmt.Println(name)
	return nil
}

// buildForm reads a row document and assembles its form with the options the
// flags and config file ask for.
func buildForm(path string) (*form.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	opts := []form.Option{form.WithLogger(logging.GetLogger())}
	if dir := firstOf(workDir, cfg.Form.WorkDir); dir != "" {
		opts = append(opts, form.WithWorkDir(dir))
	}
	sel, err := loadTheme()
	if err != nil {
		return nil, err
	}
	if sel != nil {
		opts = append(opts, form.WithTheme(sel))
	}

	var f *form.Form
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err = form.FromJSON(inputs.DefaultRegistry(), data, opts...)
	} else {
		f, err = form.FromYAML(inputs.DefaultRegistry(), data, opts...)
	}
	if err != nil {
		return nil, err
	}

	if seedPath != "" {
		values, err := readValues(seedPath)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Seed(values); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// loadTheme reads the manifest named by --theme or the config file. A nil
// selection keeps the default palette.
func loadTheme() (*theme.Selection, error) {
	path := firstOf(themePath, cfg.Form.Theme)
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	manifest := &theme.Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}

	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  firstOf(themeVariant, cfg.Form.Variant),
		Manifest: manifest,
	}, nil
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	values := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &values)
	} else {
		err = yaml.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}

func writeValues(values map[string]any) error {
	var (
		data []byte
		err  error
	)
	switch outputFormat {
	case "yaml":
		data, err = yaml.Marshal(values)
	case "json", "":
		data, err = json.MarshalIndent(values, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (use json or yaml)", outputFormat)
	}
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}

	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write values: %w", err)
	}
	fmt.Printf("Values written to %s\n", outputPath)
	return nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
