package media

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsMedia(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"talk.mp3", true},
		{"clip.MP4", true},
		{"recording.flac", true},
		{"movie.webm", true},
		{"notes.txt", false},
		{"transcript.srt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsMedia(tt.path); got != tt.expected {
			t.Errorf("IsMedia(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestGather(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.mp3"))
	touch(t, filepath.Join(dir, "a.wav"))
	touch(t, filepath.Join(dir, "skip.txt"))
	touch(t, filepath.Join(dir, "nested", "c.mkv"))
	single := filepath.Join(dir, "solo.m4a")
	touch(t, single)

	files, err := Gather([]string{dir, single})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.wav"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "nested", "c.mkv"),
		single,
		single, // listed once via the dir walk and once explicitly
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Gather() = %v, want %v", files, want)
	}
}

func TestGather_MissingPath(t *testing.T) {
	if _, err := Gather([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("Gather should fail for a missing path")
	}
}

func TestMakeParent(t *testing.T) {
	dataDir := t.TempDir()

	parent, err := MakeParent(dataDir, "interview-2026")
	if err != nil {
		t.Fatalf("MakeParent() error = %v", err)
	}
	if filepath.Base(parent) != "interview-2026" {
		t.Errorf("parent = %q", parent)
	}
	for _, sub := range []string{"material", "transcripts"} {
		if _, err := os.Stat(filepath.Join(parent, sub)); err != nil {
			t.Errorf("missing %s folder: %v", sub, err)
		}
	}
}

func TestMakeParent_DefaultName(t *testing.T) {
	parent, err := MakeParent(t.TempDir(), "")
	if err != nil {
		t.Fatalf("MakeParent() error = %v", err)
	}
	if len(filepath.Base(parent)) != len("2006-01-02_15-04-05") {
		t.Errorf("default name not a timestamp: %q", filepath.Base(parent))
	}
}

func TestPlaceMedia_Copy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.mp3")
	touch(t, src)
	destDir := filepath.Join(t.TempDir(), "material")

	dest, err := PlaceMedia(src, destDir, false)
	if err != nil {
		t.Fatalf("PlaceMedia() error = %v", err)
	}
	if dest != filepath.Join(destDir, "in.mp3") {
		t.Errorf("dest = %q", dest)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("copy removed the source: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestPlaceMedia_Move(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.mp3")
	touch(t, src)
	destDir := filepath.Join(t.TempDir(), "material")

	dest, err := PlaceMedia(src, destDir, true)
	if err != nil {
		t.Fatalf("PlaceMedia() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("move left the source behind")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}
