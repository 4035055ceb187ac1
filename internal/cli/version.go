package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time. When built without them (go install from
// the module proxy), resolveBuildInfo fills in what the toolchain recorded.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		resolveBuildInfo()
		fmt.Printf("recollect %s\n  commit: %s\n  built:  %s\n", Version, shortCommit(), BuildDate)
	},
}

// VersionString returns a compact version string for health checks and the
// MCP server handshake.
func VersionString() string {
	resolveBuildInfo()
	return fmt.Sprintf("%s (%s)", Version, shortCommit())
}

func shortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}

func resolveBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	if Commit == "unknown" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				Commit = s.Value
			}
		}
	}
}
