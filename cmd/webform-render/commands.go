package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-webform/pkg/renderarray"
)

// askPath prompts for the render array path. Tests replace it.
var askPath = func() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", errors.New("a render array file is required")
	}
	var path string
	prompt := &survey.Input{
		Message: "Render array file:",
		Help:    "YAML or JSON document describing the element tree",
	}
	if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		asked, err := askPath()
		if err != nil {
			return err
		}
		path = asked
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(reg, elementsFile)
	if err != nil {
		return err
	}
	if err := pipeline.Validate(); err != nil {
		return err
	}

	node, err := renderarray.DecodeFile(path)
	if err != nil {
		return err
	}
	logger.Debug("render array loaded", zap.String("file", path), zap.Int("keys", len(node)))

	processed, err := pipeline.Apply(cmd.Context(), node)
	if err != nil {
		return err
	}

	renderers, err := newRenderers()
	if err != nil {
		return err
	}
	renderer, err := renderers.Get(format)
	if err != nil {
		return fmt.Errorf("unsupported format %q: %w", format, err)
	}
	out, err := renderer.Render(cmd.Context(), processed)
	if err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runCallbacks(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	manifest := reg.Manifest()
	for _, name := range reg.Names() {
		for _, op := range manifest[name] {
			fmt.Fprintf(cmd.OutOrStdout(), "%s::%s\n", name, op)
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	file := elementsFile
	if len(args) == 1 {
		file = args[0]
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(reg, file)
	if err != nil {
		return err
	}
	if err := pipeline.Validate(); err != nil {
		return err
	}

	defs := pipeline.Definitions()
	for _, elementType := range defs.Types() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", elementType, strings.Join(defs[elementType].PreRender, ", "))
	}
	logger.Info("element definitions valid", zap.Int("elements", len(defs)))
	return nil
}
