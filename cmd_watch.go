package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"visualmind/diagram"
)

var (
	watchOut      string
	watchRenderer string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-render a Mermaid file to SVG whenever it changes",
	Long: `Watches a Mermaid source file. Bursts of edits are debounced, the latest
source is normalized and rendered with mermaid-cli, and the SVG is written to
--out. Rejected sources are logged and the previous SVG is left in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchOut, "out", "diagram.svg", "SVG output path")
	watchCmd.Flags().StringVar(&watchRenderer, "renderer", diagram.DefaultRenderCommand, "mermaid-cli compatible command")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", diagram.DefaultDebounce, "quiet period before rendering")
}

func runWatch(cmd *cobra.Command, args []string) error {
	target, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return watch(ctx, target, watchOut,
		diagram.CommandRenderer{Command: watchRenderer},
		diagram.WithDebounce(watchDebounce))
}

// watch re-renders target into out until ctx is done.
func watch(ctx context.Context, target, out string, r diagram.Renderer, opts ...diagram.SchedulerOption) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	opts = append([]diagram.SchedulerOption{
		diagram.WithSchedulerLogger(logger),
		diagram.OnDisplay(writeDisplay(out)),
	}, opts...)
	sched := diagram.NewScheduler(r, opts...)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return watchFile(ctx, watcher, target, sched.Update)
	})

	logger.Info("watching", zap.String("file", target), zap.String("out", out))
	return g.Wait()
}

func watchFile(ctx context.Context, w *fsnotify.Watcher, target string, update func(string)) error {
	load := func() {
		data, err := os.ReadFile(target)
		if err != nil {
			logger.Warn("read failed", zap.String("file", target), zap.Error(err))
			return
		}
		update(string(data))
	}
	load()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				load()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

func writeDisplay(out string) func(diagram.Display) {
	return func(d diagram.Display) {
		switch {
		case d.Err != nil:
			logger.Warn("render rejected; keeping previous output",
				zap.Uint64("seq", d.Seq), zap.Error(d.Err))
		case d.Empty():
			logger.Info("diagram is empty", zap.Uint64("seq", d.Seq))
		default:
			if err := os.WriteFile(out, []byte(d.SVG), 0o644); err != nil {
				logger.Error("write svg failed", zap.String("path", out), zap.Error(err))
				return
			}
			logger.Info("rendered", zap.Uint64("seq", d.Seq), zap.String("path", out))
		}
	}
}
