package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/mobilescan/domain"
)

// SourceOptions controls how component files are discovered
type SourceOptions struct {
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// DefaultSourceOptions returns default discovery options
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Recursive: true,
	}
}

// MobileUseCase orchestrates the mobile analysis workflow: discover
// component files, read them and run the batch analysis
type MobileUseCase struct {
	service    domain.MobileService
	fileHelper *FileHelper
}

// NewMobileUseCase creates a new mobile use case
func NewMobileUseCase(service domain.MobileService) *MobileUseCase {
	return &MobileUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
	}
}

// Execute analyzes every component found under paths. Files that could not
// be read are reported as response warnings.
func (uc *MobileUseCase) Execute(ctx context.Context, paths []string, opts SourceOptions, req domain.MobileRequest) (*domain.MobileResponse, error) {
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("invalid request", fmt.Errorf("no input paths specified"))
	}

	files, err := ResolveFilePaths(uc.fileHelper, paths, opts.Recursive, opts.IncludePatterns, opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no component files found in the specified paths", nil)
	}

	components, warnings := uc.fileHelper.ReadComponents(files)
	if len(components) == 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("none of the %d component files could be read", len(files)), nil)
	}

	req.Components = components
	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("mobile analysis failed", err)
	}

	response.Warnings = append(warnings, response.Warnings...)
	return response, nil
}

// AnalyzeFile analyzes a single component file
func (uc *MobileUseCase) AnalyzeFile(ctx context.Context, filePath string) (*domain.AnalysisResult, error) {
	if !uc.fileHelper.IsComponentFile(filePath) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a component file: %s", filePath), nil)
	}

	exists, err := uc.fileHelper.FileExists(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return nil, domain.NewFileNotFoundError(filePath, fmt.Errorf("file does not exist"))
	}

	components, warnings := uc.fileHelper.ReadComponents([]string{filePath})
	if len(components) == 0 {
		return nil, domain.NewReadError(filePath, fmt.Errorf("%v", warnings))
	}

	return uc.service.AnalyzeComponent(ctx, components[0])
}

// MobileUseCaseBuilder provides a builder pattern for creating MobileUseCase
type MobileUseCaseBuilder struct {
	service    domain.MobileService
	fileHelper *FileHelper
}

// NewMobileUseCaseBuilder creates a new builder
func NewMobileUseCaseBuilder() *MobileUseCaseBuilder {
	return &MobileUseCaseBuilder{}
}

// WithService sets the mobile service
func (b *MobileUseCaseBuilder) WithService(service domain.MobileService) *MobileUseCaseBuilder {
	b.service = service
	return b
}

// WithFileHelper sets the file helper
func (b *MobileUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *MobileUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// Build creates the MobileUseCase with the configured dependencies
func (b *MobileUseCaseBuilder) Build() (*MobileUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("mobile service is required")
	}

	uc := &MobileUseCase{
		service:    b.service,
		fileHelper: b.fileHelper,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
