package media

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// audioExts and videoExts define what counts as processable media
var audioExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true,
	".aac": true, ".ogg": true, ".wma": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mkv": true, ".mov": true, ".m4v": true,
	".avi": true, ".webm": true,
}

// IsMedia reports whether the path has a known audio or video extension
func IsMedia(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return audioExts[ext] || videoExts[ext]
}

// Gather resolves the given paths to a sorted list of media files.
// Directories are walked recursively; non-media files are skipped.
func Gather(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && IsMedia(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", p, err)
			}
		} else if IsMedia(p) {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files, nil
}

// TimestampName returns the default name for a new session folder
func TimestampName() string {
	return time.Now().Format("2006-01-02_15-04-05")
}

// MakeParent creates a session folder under dataDir with the material/
// and transcripts/ subfolders. An empty name falls back to a timestamp.
func MakeParent(dataDir, name string) (string, error) {
	if name == "" {
		name = TimestampName()
	}
	parent := filepath.Join(dataDir, name)
	if err := os.MkdirAll(filepath.Join(parent, "material"), 0755); err != nil {
		return "", fmt.Errorf("failed to create session folder: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(parent, "transcripts"), 0755); err != nil {
		return "", fmt.Errorf("failed to create session folder: %w", err)
	}
	return parent, nil
}

// PlaceMedia moves (or copies) the source file into destDir and
// returns the new path. Moves across filesystems fall back to
// copy-then-delete.
func PlaceMedia(src, destDir string, move bool) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destDir, err)
	}
	dest := filepath.Join(destDir, filepath.Base(src))

	if !move {
		if err := copyFile(src, dest); err != nil {
			return "", err
		}
		return dest, nil
	}

	if err := os.Rename(src, dest); err != nil {
		// EXDEV when src and dest sit on different filesystems
		if copyErr := copyFile(src, dest); copyErr != nil {
			return "", copyErr
		}
		if rmErr := os.Remove(src); rmErr != nil {
			return "", fmt.Errorf("failed to remove source after copy: %w", rmErr)
		}
	}
	return dest, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// TempCacheRoot returns the single-run cache folder, creating it on
// first use
func TempCacheRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	root := filepath.Join(home, ".mta_temp")
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp cache: %w", err)
	}
	return root, nil
}

// ClearTempCache empties the temp cache. Results of a temporary run
// only live until the next one.
func ClearTempCache() error {
	root, err := TempCacheRoot()
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read temp cache: %w", err)
	}
	for _, entry := range entries {
		os.RemoveAll(filepath.Join(root, entry.Name()))
	}
	return nil
}
