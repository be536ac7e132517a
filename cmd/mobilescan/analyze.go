package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mobilescan/app"
	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/config"
	"github.com/ludo-technologies/mobilescan/internal/constants"
	"github.com/ludo-technologies/mobilescan/service"
)

// analyzeOptions holds the analyze command flags
type analyzeOptions struct {
	format        string
	jsonOutput    bool
	htmlOutput    bool
	noOpenBrowser bool
	outputPath    string
	configPath    string
	minSeverity   string
	sortBy        string
	details       bool
	prompt        bool
	noEnrichment  bool
}

func analyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Analyze UI components for mobile readiness",
		Long: `Analyze UI component files for touch targets, responsive gaps, layout
density, navigation and financial-domain UX issues.

Examples:
  mobilescan analyze src/components
  mobilescan analyze --json src/
  mobilescan analyze --format yaml --min-severity high src/
  mobilescan analyze --html --no-open src/
  mobilescan analyze --prompt src/components/TransferForm.tsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "",
		"Output format: text, json, yaml, csv, html (default from config, text)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&opts.htmlOutput, "html", false,
		"Output results as HTML (shorthand for --format html)")
	cmd.Flags().BoolVar(&opts.noOpenBrowser, "no-open", false,
		"Don't auto-open HTML report in browser")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "",
		"Output file path (default: "+constants.HTMLReportFileName+" for HTML)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&opts.minSeverity, "min-severity", "",
		"Hide issues below this severity: critical, high, medium, low")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "",
		"Sort components by: score, name, priority, issues, path")
	cmd.Flags().BoolVar(&opts.details, "details", false,
		"List suggestions and domain impact for every issue")
	cmd.Flags().BoolVar(&opts.prompt, "prompt", false,
		"Print an AI rewrite prompt per component instead of a report")
	cmd.Flags().BoolVar(&opts.noEnrichment, "no-domain", false,
		"Disable financial-domain classification and checks")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	loader := service.NewConfigurationLoader()
	cfg, err := loader.LoadConfig(opts.configPath, args[0])
	if err != nil {
		return err
	}
	if opts.noEnrichment {
		cfg.Mobile.DomainEnrichment = false
	}

	req, err := buildAnalyzeRequest(loader, cfg, opts)
	if err != nil {
		return err
	}
	req.ConfigPath = config.ResolveConfigPath(opts.configPath, args[0])
	if req.ConfigPath != "" {
		slog.Debug("using config", "path", req.ConfigPath)
	}

	// Progress is only drawn for terminal text output
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText && !opts.prompt)
	defer pm.Close()

	svc := service.NewMobileServiceFromConfig(cfg, pm)
	uc, err := app.NewMobileUseCaseBuilder().
		WithService(svc).
		WithFileHelper(newFileHelper(cfg)).
		Build()
	if err != nil {
		return err
	}

	response, err := uc.Execute(cmd.Context(), args, sourceOptions(cfg), *req)
	if err != nil {
		return err
	}
	for _, w := range response.Warnings {
		slog.Warn("component skipped", "reason", w)
	}

	prepared := service.PrepareResponse(response, req.MinSeverity, req.SortBy)
	out := cmd.OutOrStdout()

	if opts.prompt {
		return service.WritePrompts(prepared, out)
	}

	formatter := service.NewOutputFormatter().WithDetails(opts.details || cfg.Output.ShowDetails)

	if req.OutputFormat == domain.OutputFormatHTML {
		return writeHTMLReport(cmd, formatter, prepared, req)
	}

	if req.OutputPath != "" {
		return writeReportFile(cmd, formatter, prepared, req.OutputFormat, req.OutputPath)
	}

	return formatter.Write(prepared, req.OutputFormat, out)
}

// buildAnalyzeRequest merges command flags over the configured output settings
func buildAnalyzeRequest(loader *service.ConfigurationLoaderImpl, cfg *config.Config, opts *analyzeOptions) (*domain.MobileRequest, error) {
	base, err := loader.RequestFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	override := &domain.MobileRequest{
		OutputFormat: resolveFormat(opts),
		OutputPath:   opts.outputPath,
		NoOpen:       opts.noOpenBrowser,
		SortBy:       domain.SortCriteria(strings.ToLower(opts.sortBy)),
	}
	if opts.minSeverity != "" {
		severity, err := domain.ParseSeverity(opts.minSeverity)
		if err != nil {
			return nil, domain.NewInvalidInputError("invalid --min-severity", err)
		}
		override.MinSeverity = severity
	}

	req := loader.MergeRequest(base, override)
	if req.OutputFormat == "" {
		req.OutputFormat = domain.OutputFormatText
	}
	if err := loader.ValidateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid options", err)
	}
	return req, nil
}

func resolveFormat(opts *analyzeOptions) domain.OutputFormat {
	switch {
	case opts.jsonOutput:
		return domain.OutputFormatJSON
	case opts.htmlOutput:
		return domain.OutputFormatHTML
	default:
		return domain.OutputFormat(strings.ToLower(opts.format))
	}
}

func newFileHelper(cfg *config.Config) *app.FileHelper {
	return app.NewFileHelper(
		app.WithGitignore(cfg.Analysis.RespectGitignore),
		app.WithMaxFileSizeKB(cfg.Analysis.MaxFileSizeKB),
	)
}

func sourceOptions(cfg *config.Config) app.SourceOptions {
	return app.SourceOptions{
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}
}

// writeHTMLReport saves the HTML report and opens it unless disabled or remote
func writeHTMLReport(cmd *cobra.Command, formatter *service.OutputFormatterImpl, response *domain.MobileResponse, req *domain.MobileRequest) error {
	htmlPath := req.OutputPath
	if htmlPath == "" {
		htmlPath = constants.HTMLReportFileName
	}

	if err := writeReportFile(cmd, formatter, response, domain.OutputFormatHTML, htmlPath); err != nil {
		return err
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		absPath = htmlPath
	}
	if !req.NoOpen && !service.IsSSH() && service.IsInteractiveEnvironment() {
		if err := service.OpenBrowser("file://" + absPath); err != nil {
			slog.Warn("could not open browser", "error", err)
		}
	}
	return nil
}

func writeReportFile(cmd *cobra.Command, formatter *service.OutputFormatterImpl, response *domain.MobileResponse, format domain.OutputFormat, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.NewOutputError("failed to create output directory", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer file.Close()

	if err := formatter.Write(response, format, file); err != nil {
		return err
	}

	displayPath := path
	if absPath, err := filepath.Abs(path); err == nil {
		displayPath = absPath
	}
	reportSaved(cmd.ErrOrStderr(), format, displayPath)
	return nil
}

func reportSaved(w io.Writer, format domain.OutputFormat, path string) {
	fmt.Fprintf(w, "%s report saved to: %s\n", strings.ToUpper(string(format)), path)
}
