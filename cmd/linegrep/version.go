package linegrep

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Stamped at release time with
// -ldflags "-X github.com/linegrep-cli/cmd/linegrep.Version=v1.2.3 ..."
var (
	Version   = ""
	BuildDate = ""
	GitCommit = ""
)

type versionInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

// resolveVersion prefers linker-stamped values and falls back to the module
// and VCS data the toolchain embeds in the binary
func resolveVersion(info *debug.BuildInfo) versionInfo {
	v := versionInfo{Version: Version, Commit: GitCommit, Date: BuildDate}
	if info != nil {
		v.GoVersion = info.GoVersion
		if v.Version == "" && info.Main.Version != "(devel)" {
			v.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if v.Commit == "" {
					v.Commit = setting.Value
				}
			case "vcs.time":
				if v.Date == "" {
					v.Date = setting.Value
				}
			case "vcs.modified":
				v.Modified = setting.Value == "true"
			}
		}
	}
	if v.Version == "" {
		v.Version = "devel"
	}
	return v
}

func (v versionInfo) String() string {
	var details []string
	if v.Commit != "" {
		commit := v.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		if v.Modified {
			commit += "-dirty"
		}
		details = append(details, "commit "+commit)
	}
	if v.Date != "" {
		details = append(details, "built "+v.Date)
	}
	if v.GoVersion != "" {
		details = append(details, v.GoVersion)
	}

	if len(details) == 0 {
		return "linegrep " + v.Version
	}
	return fmt.Sprintf("linegrep %s (%s)", v.Version, strings.Join(details, ", "))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the linegrep version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, _ := debug.ReadBuildInfo()
		_, err := fmt.Fprintln(cmd.OutOrStdout(), resolveVersion(info))
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
