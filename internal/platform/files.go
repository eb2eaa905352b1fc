package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Data directory and output constants
const (
	AppDataDirName      = "YTDash"
	OutputExtension     = ".mp4"
	DefaultRecentLimit  = 5
	fileSizeUnitDivisor = 1024.0
)

// File size unit names
var (
	FileSizeUnits = []string{"B", "KB", "MB", "GB"}
)

// OutputFile describes a finished video in the output directory
type OutputFile struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func existingAbsPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DefaultDataDir returns <home>/YTDash/<name>, the default location for
// output and temp directories
func DefaultDataDir(name string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, AppDataDirName, name), nil
}

// FormatFileSize formats a byte count as a human readable string ("0B", "1.5 KB", "2.0 GB")
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "0B"
	}
	size := float64(sizeBytes)
	i := 0
	for size >= fileSizeUnitDivisor && i < len(FileSizeUnits)-1 {
		size /= fileSizeUnitDivisor
		i++
	}
	return fmt.Sprintf("%.1f %s", size, FileSizeUnits[i])
}

// FileSize returns the size of path, or 0 if it cannot be read
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// ErrSharedWorkDir is returned when the temp and output directories overlap
var ErrSharedWorkDir = errors.New("temp and output directories must not overlap")

// JobTempDir returns the private temp directory of one job: <tempDir>/<videoID>
func JobTempDir(tempDir, videoID string) string {
	return filepath.Join(tempDir, videoID)
}

// CleanupTempFiles removes the temp directory of videoID and returns how many
// files it held. Files of other jobs live in their own directories and are untouched.
// A missing directory is not an error.
func CleanupTempFiles(tempDir, videoID string) (int, error) {
	if videoID == "" || videoID == "." || videoID == ".." || strings.ContainsAny(videoID, `/\`) {
		return 0, fmt.Errorf("invalid video id %q", videoID)
	}

	dir := JobTempDir(tempDir, videoID)
	removed := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			removed++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read temp directory %s: %w", dir, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, fmt.Errorf("failed to remove temp directory %s: %w", dir, err)
	}
	return removed, nil
}

// ValidateWorkDirs rejects a temp directory that equals, contains or sits
// inside the output directory
func ValidateWorkDirs(outputDir, tempDir string) error {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", outputDir, err)
	}
	tmp, err := filepath.Abs(tempDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", tempDir, err)
	}
	if within(out, tmp) || within(tmp, out) {
		return fmt.Errorf("%w: output %s, temp %s", ErrSharedWorkDir, out, tmp)
	}
	return nil
}

// within reports whether path equals base or lies below it
func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RecentOutputs lists the newest .mp4 files in dir, newest first.
// limit <= 0 uses DefaultRecentLimit.
func RecentOutputs(dir string, limit int) ([]OutputFile, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []OutputFile{}, nil
		}
		return nil, fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}

	files := make([]OutputFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), OutputExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, OutputFile{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})

	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
