package ports

import (
	"context"
)

// GitInfo holds git repository context captured at session start.
type GitInfo struct {
	Branch     string
	Commit     string
	Repository string
	IsClean    bool
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the working directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable checks if git context detection can work at all.
	IsAvailable() bool
}
