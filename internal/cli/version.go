package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leochaparro05/rutinas/pkg/rutinas"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rutinas.VersionInfo())
	},
}
