package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strive-code/strive/display"
	"github.com/strive-code/strive/version"
)

// VersionCmd reports what binary this is and how it was built
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show Strive version information",
	Long:  "Display version, commit, build time, and platform for the strive binary.",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(info)
	}

	fmt.Println(info.String())
	fmt.Printf("Go:       %s\n", info.GoVersion)
	fmt.Printf("Platform: %s\n", info.Platform)
	return nil
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
