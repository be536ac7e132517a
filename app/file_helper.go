package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/mobilescan/domain"
)

// componentExtensions lists the file extensions treated as UI components
var componentExtensions = map[string]bool{
	".jsx":    true,
	".tsx":    true,
	".js":     true,
	".ts":     true,
	".vue":    true,
	".svelte": true,
}

// alwaysExcluded are test and story files that never describe rendered UI
var alwaysExcluded = []string{"*.test.*", "*.spec.*", "*.stories.*", "__tests__"}

// FileHelper discovers and reads component files
type FileHelper struct {
	respectGitignore bool
	maxFileSize      int64
}

// FileHelperOption configures a FileHelper
type FileHelperOption func(*FileHelper)

// WithGitignore makes directory walks skip paths matched by the root .gitignore
func WithGitignore(enabled bool) FileHelperOption {
	return func(h *FileHelper) {
		h.respectGitignore = enabled
	}
}

// WithMaxFileSizeKB skips larger files when reading (0 = no limit)
func WithMaxFileSizeKB(kb int) FileHelperOption {
	return func(h *FileHelper) {
		h.maxFileSize = int64(kb) * 1024
	}
}

// NewFileHelper creates a new FileHelper
func NewFileHelper(opts ...FileHelperOption) *FileHelper {
	h := &FileHelper{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CollectComponentFiles collects component files from paths
func (h *FileHelper) CollectComponentFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	excludePatterns = append(append([]string{}, excludePatterns...), alwaysExcluded...)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if h.accepts(path, includePatterns, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		gitignore := h.loadGitignore(path)

		// Directory handling
		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				if gitignore != nil && filePath != path {
					if rel, relErr := filepath.Rel(path, filePath); relErr == nil && gitignore.MatchesPath(filepath.ToSlash(rel)) {
						if info.IsDir() {
							return filepath.SkipDir
						}
						return nil
					}
				}

				// Skip excluded directories early
				if info.IsDir() {
					if filePath != path && matchesDirPattern(filepath.Base(filePath), excludePatterns) {
						return filepath.SkipDir
					}
					return nil
				}

				if h.accepts(filePath, includePatterns, excludePatterns) {
					files = append(files, filePath)
				}

				return nil
			})
		} else {
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				return nil, readErr
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if gitignore != nil && gitignore.MatchesPath(entry.Name()) {
					continue
				}
				if h.accepts(filePath, includePatterns, excludePatterns) {
					files = append(files, filePath)
				}
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// ReadComponents reads files into component sources. Unreadable and
// oversized files are skipped with a warning.
func (h *FileHelper) ReadComponents(files []string) ([]domain.ComponentSource, []string) {
	components := make([]domain.ComponentSource, 0, len(files))
	var warnings []string

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			warnings = append(warnings, domain.NewReadError(file, err).Error())
			continue
		}
		if h.maxFileSize > 0 && info.Size() > h.maxFileSize {
			warnings = append(warnings, fmt.Sprintf("skipped %s: %d bytes exceeds the %d byte limit", file, info.Size(), h.maxFileSize))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			warnings = append(warnings, domain.NewReadError(file, err).Error())
			continue
		}

		components = append(components, domain.ComponentSource{
			Name:    ComponentName(file),
			Path:    file,
			Content: string(content),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return components, warnings
}

// IsComponentFile checks if a path has a component file extension
func (h *FileHelper) IsComponentFile(path string) bool {
	return componentExtensions[strings.ToLower(filepath.Ext(path))]
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ComponentName derives a component name from its file name
func ComponentName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	// index.tsx files are named after their directory
	if name == "index" {
		if dir := filepath.Base(filepath.Dir(path)); dir != "." && dir != string(filepath.Separator) {
			return dir
		}
	}
	return name
}

func (h *FileHelper) accepts(path string, includePatterns, excludePatterns []string) bool {
	return h.IsComponentFile(path) && isIncluded(path, includePatterns) && !isExcluded(path, excludePatterns)
}

func (h *FileHelper) loadGitignore(root string) *ignore.GitIgnore {
	if !h.respectGitignore {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// isIncluded matches the base name against include globs such as **/*.tsx.
// No patterns means everything is included.
func isIncluded(path string, includePatterns []string) bool {
	if len(includePatterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range includePatterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "**/")
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// isExcluded checks if a path matches any exclude pattern
func isExcluded(path string, excludePatterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		// Directory names anywhere in the path
		for _, segment := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
			if segment == pattern {
				return true
			}
		}
	}
	return false
}

func matchesDirPattern(dirName string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if pattern == dirName {
			return true
		}
		if matched, _ := filepath.Match(pattern, dirName); matched {
			return true
		}
	}
	return false
}

// ResolveFilePaths resolves file paths, returning existing component files
// directly or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	// Check if all paths are already component files
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists || !fileHelper.IsComponentFile(path) {
			allFiles = false
			break
		}
	}

	// Explicitly named files bypass include and exclude patterns
	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectComponentFiles(paths, recursive, includePatterns, excludePatterns)
}
