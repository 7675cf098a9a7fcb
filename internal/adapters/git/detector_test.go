package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestNewDetector(t *testing.T) {
	d := NewDetector()
	if d == nil {
		t.Fatal("NewDetector() returned nil")
	}
}

func TestDetector_Detect(t *testing.T) {
	tmpDir := t.TempDir()

	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	testFile := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(testFile, []byte("dial work"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add("notes.txt"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}

	commit, err := worktree.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	d := NewDetector()
	info, err := d.Detect(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.Commit != commit.String() {
		t.Errorf("Commit = %q, want %q", info.Commit, commit.String())
	}
	if info.Branch == "" {
		t.Error("Branch is empty")
	}
	if !info.IsClean {
		t.Error("IsClean = false for a fully committed worktree")
	}
}

func TestDetector_Detect_SubdirectoryFindsRepo(t *testing.T) {
	tmpDir := t.TempDir()

	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	worktree, _ := repo.Worktree()
	worktree.Add("a.txt")
	if _, err := worktree.Commit("init", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "t@example.com"},
	}); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	subDir := filepath.Join(tmpDir, "deep", "nested")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	d := NewDetector()
	info, err := d.Detect(context.Background(), subDir)
	if err != nil {
		t.Fatalf("Detect() from subdirectory error = %v", err)
	}
	if info.Commit == "" {
		t.Error("Commit is empty")
	}
}

func TestDetector_Detect_NoRepo(t *testing.T) {
	d := NewDetector()

	_, err := d.Detect(context.Background(), t.TempDir())
	if err == nil {
		t.Error("Detect() in a bare directory should fail")
	}
}

func TestExtractRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"git@github.com:dvidx/focusdial.git", "dvidx/focusdial"},
		{"https://github.com/dvidx/focusdial.git", "dvidx/focusdial"},
		{"https://github.com/dvidx/focusdial", "dvidx/focusdial"},
		{"/srv/git/focusdial.git", "/srv/git/focusdial"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := extractRepoName(tt.url); got != tt.want {
				t.Errorf("extractRepoName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
