// slingcritter is a slingshot physics puzzle game.
//
// Usage:
//
//	slingcritter [play]          - Start the game at the menu
//	slingcritter play --level id - Jump straight into a level
//	slingcritter scores <level>  - Show recorded scores for a level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagDebug  bool
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slingcritter",
	Short: "Sling Critter - pull, aim, launch",
	Long: `Sling Critter is a 2D physics puzzle game. Pull the critter back on
the slingshot, let go, and knock out every target before you run out of
birds.

Examples:
  slingcritter
  slingcritter play --level level-002
  slingcritter scores level-001`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging and the FPS overlay")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the scores database (default: user config dir)")

	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}
