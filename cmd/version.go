package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		printVersion(cmd.OutOrStdout(), version, info)
	},
}

// printVersion falls back to the module version from the build info when
// no version was stamped, so `go install ...@v1.2.3` reports v1.2.3.
func printVersion(w io.Writer, stamped string, info *debug.BuildInfo) {
	v := stamped
	goVersion := ""
	if info != nil {
		goVersion = info.GoVersion
		if v == "(devel)" && info.Main.Version != "" {
			v = info.Main.Version
		}
	}
	if goVersion == "" {
		fmt.Fprintln(w, "identitygift", v)
		return
	}
	fmt.Fprintf(w, "identitygift %s (%s)\n", v, goVersion)
}
