package shadow

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestStore_Clean(t *testing.T) {
	s := newTestStore(t)

	ours, err := s.Create([]byte("shadow"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	legacy := filepath.Join(s.Dir, "git-chdiffabc")
	touch(t, legacy)
	unrelated := filepath.Join(s.Dir, "unrelated.temp")
	touch(t, unrelated)
	dir := filepath.Join(s.Dir, "git-chdiff-dir")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var visited []string
	result, err := s.Clean(os.Getuid(), func(path string) { visited = append(visited, path) })
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	want := []string{legacy, ours}
	sort.Strings(want)
	got := append([]string(nil), result.Removed...)
	sort.Strings(got)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Removed = %v, want %v", got, want)
	}
	if len(visited) != 2 {
		t.Errorf("onRemove called %d times, want 2", len(visited))
	}
	if len(result.Failed) != 0 {
		t.Errorf("Failed = %v, want none", result.Failed)
	}

	if exists(ours) || exists(legacy) {
		t.Errorf("matching files survived the clean")
	}
	if !exists(unrelated) {
		t.Errorf("unrelated file was removed")
	}
	if !exists(dir) {
		t.Errorf("directory with matching name was removed")
	}
}

func TestStore_CleanSkipsOtherOwners(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file ownership is not checked on windows")
	}

	s := newTestStore(t)
	path, err := s.Create([]byte("shadow"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := s.Clean(os.Getuid()+1, nil)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(result.Removed) != 0 {
		t.Fatalf("Removed = %v, want none", result.Removed)
	}
	if !exists(path) {
		t.Fatalf("file owned by the caller removed for a different uid")
	}
}

func TestStore_CleanSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	s := newTestStore(t)
	target := filepath.Join(t.TempDir(), "target.txt")
	touch(t, target)
	link := filepath.Join(s.Dir, "git-chdiff-link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if _, err := s.Clean(os.Getuid(), nil); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if !exists(link) || !exists(target) {
		t.Fatalf("symlink or its target was removed")
	}
}

func TestStore_CleanListingFails(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "missing"), Prefix: "git-chdiff"}

	result, err := s.Clean(os.Getuid(), nil)
	if err == nil {
		t.Fatalf("expected error for unlistable directory")
	}
	if result != nil {
		t.Fatalf("expected nil result on listing failure, got %+v", result)
	}
}
