package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the fixtura build version, the Go version and the event store driver in use.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			for _, line := range versionLines(info, ok, viper.GetString(storeDriverKey)) {
				cmd.Println(line)
			}
		},
	}
}

// versionLines renders build information; info may be nil when ok is false.
func versionLines(info *debug.BuildInfo, ok bool, storeDriver string) []string {
	lines := make([]string, 0, 3)

	if !ok || info == nil || info.Main.Version == "" {
		lines = append(lines, "fixtura version\t unknown")
	} else {
		lines = append(lines, "fixtura version\t "+info.Main.Version, "go version\t "+info.GoVersion)
	}

	return append(lines, "store driver\t "+storeDriver)
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
