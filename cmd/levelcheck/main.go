// levelcheck validates level files the way the game loads them.
//
// Usage:
//
//	levelcheck list             - List known level ids
//	levelcheck check [id...]    - Validate the given levels, or all of them
//	levelcheck watch            - Re-check levels whenever a file changes
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/slingcritter/levels"
	"github.com/spf13/cobra"
)

var (
	flagDir      string
	flagEmbedded bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "levelcheck",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "levelcheck",
	Short:         "Validate Sling Critter level files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known level ids",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range newLoader().IDs() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [id...]",
	Short: "Validate levels",
	Long: `Load each level through the game's loader and report problems.
With no arguments every known level is checked.

Examples:
  levelcheck check
  levelcheck check level-002 --dir ./my-levels`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l := newLoader()
		ids := args
		if len(ids) == 0 {
			ids = l.IDs()
		}
		failed := report(cmd.OutOrStdout(), check(cmd.Context(), l, ids))
		if failed > 0 {
			return fmt.Errorf("%d of %d levels failed", failed, len(ids))
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check levels in --dir whenever they change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "levels", "directory of level files")
	rootCmd.PersistentFlags().BoolVar(&flagEmbedded, "embedded", true, "include the levels built into the game")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

func newLoader() *levels.Loader {
	if flagEmbedded {
		return levels.NewLoader(levels.LevelsFS, flagDir)
	}
	return levels.NewLoader(nil, flagDir)
}

type result struct {
	id  string
	err error
}

func check(ctx context.Context, l *levels.Loader, ids []string) []result {
	if ctx == nil {
		ctx = context.Background()
	}
	out := make([]result, 0, len(ids))
	for _, id := range ids {
		_, err := l.Load(ctx, id)
		out = append(out, result{id: levels.CleanID(id), err: err})
	}
	return out
}

// report prints one line per level and returns the number of failures.
func report(w io.Writer, results []result) int {
	failed := 0
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(w, "ok    %s\n", r.id)
			continue
		}
		failed++
		var le *levels.LoadError
		if errors.As(r.err, &le) {
			fmt.Fprintf(w, "FAIL  %s [%s]: %v\n", r.id, le.Stage, le.Err)
			if len(le.Suggestions) > 0 {
				fmt.Fprintf(w, "      did you mean: %s\n", strings.Join(le.Suggestions, ", "))
			}
			continue
		}
		fmt.Fprintf(w, "FAIL  %s: %v\n", r.id, r.err)
	}
	return failed
}

func watch(ctx context.Context, out io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(flagDir); err != nil {
		return fmt.Errorf("watch %s: %w", flagDir, err)
	}
	logger.Info("watching", "dir", flagDir)

	l := newLoader()
	last := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			report(out, check(ctx, l, []string{event.Name}))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
