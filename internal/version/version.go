package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/goliatone/go-formwidgets/internal/version.Version=v1.2.3 \
//	                   -X github.com/goliatone/go-formwidgets/internal/version.Commit=abc123"
//
// When unset they are populated from build info, falling back to "dev".
var (
	// Version is the semantic version of the binary.
	Version = ""
	// Commit is the git commit hash.
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		populateFromBuildInfo()
	}
	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// populateFromBuildInfo reads VCS details stamped into the binary when it was
// built inside a git checkout.
func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var revision, modified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			Commit = revision[:7]
		} else {
			Commit = revision
		}
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Full returns the version string including commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
