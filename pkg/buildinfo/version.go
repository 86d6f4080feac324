// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/figforge/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/figforge/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/figforge/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/matzehuels/figforge/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/figforge/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/figforge/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

var (
	identityOnce sync.Once
	identity     string
)

// Fingerprint identifies the drawing code that produced a figure.
// Cached renders from a different build are never reused.
//
// A commit set through ldflags is trusted as is. Otherwise the VCS
// revision stamped by the go command is used when the tree was clean, and
// a hash of the running executable when it was not or nothing was
// stamped, so local edits always change the fingerprint.
func Fingerprint() string {
	if Commit != "" && Commit != "none" {
		return Version + "+" + Commit
	}
	identityOnce.Do(func() { identity = buildIdentity() })
	return Version + "+" + identity
}

func buildIdentity() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if rev, ok := cleanRevision(info.Settings); ok {
			return rev
		}
	}
	return executableHash()
}

// cleanRevision returns vcs.revision when vcs.modified is "false".
func cleanRevision(settings []debug.BuildSetting) (string, bool) {
	var rev, modified string
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if rev == "" || modified != "false" {
		return "", false
	}
	return rev, true
}

func executableHash() string {
	path, err := os.Executable()
	if err != nil {
		return "unknown"
	}
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "unknown"
	}
	return "exe-" + hex.EncodeToString(h.Sum(nil))[:16]
}
