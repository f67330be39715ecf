package main

import (
	"fmt"

	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/storage"
	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show recorded scores for a level",
	Long: `Display the top 10 winning scores for a level.

Examples:
  slingcritter scores level-001`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	id := levels.CleanID(args[0])

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = storage.DefaultPath()
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(id, 10)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", id)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Stars", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %s\n", i+1, e.Score, e.Stars, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
