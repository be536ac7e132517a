package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mobilescan/internal/config"
	"github.com/ludo-technologies/mobilescan/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a mobilescan configuration file",
		Long: `Generate a documented mobilescan configuration file with sensible defaults.

By default, creates mobilescan.yaml in the current directory with every
section documented. Use --interactive for a guided setup wizard.

Examples:
  # Create mobilescan.yaml in current directory
  mobilescan init

  # Custom output path
  mobilescan init --config configs/mobilescan.yaml

  # Overwrite existing file
  mobilescan init --force

  # Generate smaller config with essential options only
  mobilescan init --minimal

  # Preset without the wizard
  mobilescan init --project react-native --strictness strict

  # Interactive setup wizard
  mobilescan init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")
	cmd.Flags().String("project", string(config.ProjectTypeGeneric),
		"Project type: generic, react, react-native, vue, svelte")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Strictness: relaxed, standard, strict")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	project, _ := cmd.Flags().GetString("project")
	strict, _ := cmd.Flags().GetString("strictness")

	projectType := config.ProjectType(project)
	strictness := config.Strictness(strict)
	if _, ok := config.GetProjectPresets()[projectType]; !ok {
		return fmt.Errorf("unknown project type: %s", project)
	}
	if _, ok := config.GetStrictnessPresets()[strictness]; !ok {
		return fmt.Errorf("unknown strictness: %s", strict)
	}

	out := cmd.OutOrStdout()

	if interactive {
		var err error
		projectType, strictness, configPath, err = runInteractiveSetup(out, configPath)
		if err != nil {
			return err
		}
	}

	// Check if file exists
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	// Check if parent directory exists
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	var err error
	if minimal {
		content, err = config.GetMinimalConfigTemplate()
	} else {
		content, err = config.GetFullConfigTemplate(projectType, strictness)
	}
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintf(out, "\nRun '%s analyze .' to analyze your components.\n", constants.ToolName)

	return nil
}

func runInteractiveSetup(out io.Writer, defaultConfigPath string) (config.ProjectType, config.Strictness, string, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "mobilescan Configuration Setup")
	fmt.Fprintln(out, "==============================")
	fmt.Fprintln(out)

	projectTypes := []struct {
		Label string
		Value config.ProjectType
	}{
		{"Generic (JSX, TSX, Vue, Svelte)", config.ProjectTypeGeneric},
		{"React / Next.js", config.ProjectTypeReact},
		{"React Native / Expo", config.ProjectTypeReactNative},
		{"Vue / Nuxt", config.ProjectTypeVue},
		{"Svelte / SvelteKit", config.ProjectTypeSvelte},
	}

	projectTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	projectPrompt := promptui.Select{
		Label:     "Which UI stack do your components use?",
		Items:     projectTypes,
		Templates: projectTemplates,
	}

	projectIdx, _, err := projectPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("project selection cancelled: %w", err)
	}
	selectedProject := projectTypes[projectIdx].Value

	fmt.Fprintln(out)

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "44px targets, min score 70, fail on critical", config.StrictnessStandard},
		{"Relaxed", "40px targets, min score 60, fail on critical", config.StrictnessRelaxed},
		{"Strict", "48px targets, min score 85, fail on high", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should the mobile gate be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Fprintln(out)

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Creating %s... ", outputPath)

	return selectedProject, selectedStrictness, outputPath, nil
}
