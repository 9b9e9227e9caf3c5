package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AllowedBasePaths contains directories from which files can be read
// and written. If empty, defaults to the current working directory.
var AllowedBasePaths []string

// InitAllowedPaths configures the directories file operations may
// touch. Each entry must exist and be a directory; entries are resolved
// through symlinks once, up front.
func InitAllowedPaths(paths []string) error {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		absPath, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid allowed path %q: %w", p, err)
		}
		realPath, err := filepath.EvalSymlinks(absPath)
		if err != nil {
			return fmt.Errorf("invalid allowed path %q: %w", p, err)
		}
		info, err := os.Stat(realPath)
		if err != nil {
			return fmt.Errorf("invalid allowed path %q: %w", p, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("allowed path %q is not a directory", p)
		}
		resolved = append(resolved, realPath)
	}
	AllowedBasePaths = resolved
	return nil
}

// LoadAllowedPathsFromEnv reads CELLQ_ALLOWED_PATHS, a comma-separated
// list of directories. An unset or empty variable leaves the default of
// the current working directory in place.
func LoadAllowedPathsFromEnv() error {
	raw := os.Getenv("CELLQ_ALLOWED_PATHS")
	if raw == "" {
		return nil
	}
	return InitAllowedPaths(strings.Split(raw, ","))
}

// ValidateFilePath ensures the path is safe to read. The file must
// exist; the returned path has symlinks resolved.
func ValidateFilePath(requestedPath string) (string, error) {
	if requestedPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	absPath, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	// Resolve symlinks to prevent bypass
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", requestedPath)
		}
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	if !withinAllowedPaths(realPath) {
		return "", fmt.Errorf("access denied: path outside allowed directories")
	}
	return realPath, nil
}

// ValidateWritePath ensures a path is safe to create or modify. The
// file may not exist yet, so the check runs against its parent
// directory. When allowOverwrite is false an existing file is refused.
func ValidateWritePath(requestedPath string, allowOverwrite bool) (string, error) {
	if requestedPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	if !strings.EqualFold(filepath.Ext(requestedPath), ".xlsx") {
		return "", fmt.Errorf("access denied: only .xlsx files can be written")
	}

	absPath, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	realDir, err := filepath.EvalSymlinks(filepath.Dir(absPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("directory not found: %s", filepath.Dir(requestedPath))
		}
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}
	if !withinAllowedPaths(realDir) {
		return "", fmt.Errorf("access denied: path outside allowed directories")
	}

	validPath := filepath.Join(realDir, filepath.Base(absPath))

	// An existing target may itself be a symlink pointing elsewhere;
	// follow it so the write lands inside the allowed directories too.
	if realPath, err := filepath.EvalSymlinks(validPath); err == nil {
		if !withinAllowedPaths(realPath) {
			return "", fmt.Errorf("access denied: path outside allowed directories")
		}
		validPath = realPath
	}

	if !allowOverwrite {
		if _, err := os.Stat(validPath); err == nil {
			return "", fmt.Errorf("file already exists: %s", requestedPath)
		}
	}

	return validPath, nil
}

// CheckFileSize refuses files larger than maxSize. Missing files pass,
// since write operations may be about to create them.
func CheckFileSize(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot stat file: %w", err)
	}
	if info.Size() > maxSize {
		return fmt.Errorf("file too large: %d bytes exceeds limit of %d bytes", info.Size(), maxSize)
	}
	return nil
}

// withinAllowedPaths reports whether a resolved path sits inside one of
// the allowed base directories, or is one of them.
func withinAllowedPaths(realPath string) bool {
	basePaths := AllowedBasePaths
	if len(basePaths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return false
		}
		basePaths = []string{cwd}
	}

	for _, base := range basePaths {
		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		realBase, err := filepath.EvalSymlinks(absBase)
		if err != nil {
			continue
		}
		if strings.HasPrefix(realPath, realBase+string(os.PathSeparator)) || realPath == realBase {
			return true
		}
	}
	return false
}
