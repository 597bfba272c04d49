package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-webform/pkg/callbacks"
	"github.com/goliatone/go-webform/pkg/prerender"
	"github.com/goliatone/go-webform/pkg/render"
	"github.com/goliatone/go-webform/pkg/renderers/html"
	"github.com/goliatone/go-webform/pkg/renderers/yaml"
	"github.com/goliatone/go-webform/pkg/selectother"
)

var (
	verbose      bool
	elementsFile string
	format       string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "webform-render",
	Short: "Run trusted pre-render callbacks over webform render arrays",
	Long: `webform-render loads a render array from YAML or JSON, runs the
pre-render callbacks configured for each element type and prints the result.

Callbacks are resolved strictly against the trusted manifest of each
registered provider.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Process a render array and print it as YAML or HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

var callbacksCmd = &cobra.Command{
	Use:   "callbacks",
	Short: "List the trusted callbacks of every registered provider",
	Args:  cobra.NoArgs,
	RunE:  runCallbacks,
}

var validateCmd = &cobra.Command{
	Use:   "validate [elements-file]",
	Short: "Check element definitions against the trusted callback manifests",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&elementsFile, "elements", "e", "", "Additional element definitions (YAML)")
	renderCmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or html")

	rootCmd.AddCommand(renderCmd, callbacksCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRegistry wires every built-in callback provider.
func newRegistry() (*callbacks.Registry, error) {
	reg := callbacks.NewRegistry()
	if err := selectother.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// newPipeline builds the pipeline with the built-in definitions plus the
// definitions file, when one is given.
func newPipeline(reg *callbacks.Registry, extraFile string) (*prerender.Pipeline, error) {
	options := []prerender.Option{
		prerender.WithDefinitions(selectother.Definition()),
		prerender.WithLogger(logger),
	}
	if extraFile != "" {
		defs, err := prerender.LoadDefinitionsFile(extraFile)
		if err != nil {
			return nil, err
		}
		options = append(options, prerender.WithDefinitionSet(defs))
	}
	return prerender.New(reg, options...), nil
}

// newRenderers registers the output formats selectable with --format.
func newRenderers() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	renderers := render.NewRegistry()
	if err := renderers.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := renderers.Register(yaml.New(), "yml"); err != nil {
		return nil, err
	}
	return renderers, nil
}
