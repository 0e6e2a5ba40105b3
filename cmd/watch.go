package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gnolang/entitygen"
)

// debounceDelay merges the burst of events an editor save produces.
const debounceDelay = 100 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the entity table or configuration changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sets := []*pflag.FlagSet{cmd.Flags(), cmd.Root().Flags()}
		override := func(c *entitygen.Config) error { return genFlags.apply(c, sets...) }

		if err := runWatch(ctx, logger, cfgFile, override, cmd.OutOrStdout()); err != nil {
			logger.Error("Watch failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	genFlags.register(watchCmd.Flags())
}

// runWatch regenerates once, then again after every change to the entity
// table or the configuration file, until ctx is done.
func runWatch(
	ctx context.Context,
	logger *zap.Logger,
	configPath string,
	override func(*entitygen.Config) error,
	stdout io.Writer,
) error {
	load := func() (entitygen.Config, error) {
		config, err := loadConfig(configPath)
		if err != nil {
			return config, err
		}
		if override != nil {
			err = override(&config)
		}
		return config, err
	}

	config, err := load()
	if err != nil {
		return err
	}
	if config.EntitiesPath() == "" {
		return errors.New("watch needs an entity table file (set entities in the configuration or pass --entities)")
	}

	targets := make(map[string]bool)
	for _, p := range []string{config.EntitiesPath(), configPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// watch directories: editors often replace files instead of writing them
	dirs := make(map[string]bool)
	for target := range targets {
		dir := filepath.Dir(target)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}

	regenerate := func() {
		config, err := load()
		if err != nil {
			logger.Error("Failed to load configuration", zap.Error(err))
			return
		}
		if err := runGenerate(logger, config, stdout); err != nil {
			logger.Error("Generation failed", zap.Error(err))
		}
	}

	regenerate()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("Change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
				debounce = time.After(debounceDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		case <-debounce:
			debounce = nil
			regenerate()
		}
	}
}
