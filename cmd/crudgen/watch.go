package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const watchDebounce = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the CRUD API when the schema changes",
		Long: `Watch runs a generation, then monitors the schema document and
regenerates the output on every change. Changes arriving while a generation
runs are coalesced into the next one. Failed generations are reported and
the previous output is kept.

Examples:
  crudgen watch
  crudgen watch --schema schema.yaml --verbose
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchSchema(ctx, cmd.OutOrStdout(), s, log)
		},
	}
	addGenerateFlags(cmd)
	return cmd
}

// watchSchema regenerates the output on each change of the schema document
// until ctx is done. Generations never overlap.
func watchSchema(ctx context.Context, out io.Writer, s *Settings, log *zap.Logger) error {
	schema, err := filepath.Abs(s.Schema)
	if err != nil {
		return fmt.Errorf("resolve schema path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()
	// Editors often replace the file on save, so the directory is watched.
	if err := w.Add(filepath.Dir(schema)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(schema), err)
	}

	run := func(reason string) {
		rlog := log.With(zap.String("run", uuid.NewString()), zap.String("reason", reason))
		rlog.Info("generation started")
		if err := runGenerate(ctx, out, s, rlog); err != nil {
			rlog.Error("generation failed", zap.Error(err))
			color.New(color.FgRed).Fprintf(out, "  %v\n", err)
			return
		}
		rlog.Info("generation finished")
	}
	run("start")
	color.New(color.Bold, color.FgCyan).Fprintf(out, "watching %s (Ctrl+C to stop)\n", s.Schema)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != schema || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("schema changed", zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-fire:
			fire = nil
			run("change")
		}
	}
}
