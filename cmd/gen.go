package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gnolang/entitygen"
)

// generateFlags override the loaded configuration when set.
type generateFlags struct {
	entities    string
	output      string
	backend     string
	preset      string
	strict      bool
	pkg         string
	fn          string
	typ         string
	constructor string
}

var genFlags generateFlags

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the decision procedure",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		if err := genFlags.apply(&config, cmd.Flags(), cmd.Root().Flags()); err != nil {
			logger.Fatal("Invalid flags", zap.Error(err))
		}

		if err := runGenerate(logger, config, cmd.OutOrStdout()); err != nil {
			logger.Error("Generation failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	genFlags.register(genCmd.Flags())
}

func (f *generateFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.entities, "entities", "e", "", "YAML entity table (default: built-in table)")
	fs.StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	fs.StringVar(&f.backend, "backend", string(entitygen.BackendText), "Output backend: text or go")
	fs.StringVar(&f.preset, "syntax", "generic", "Syntax preset of the text backend: generic or rust")
	fs.BoolVar(&f.strict, "strict", false, "Validate every character, including single-path runs")
	fs.StringVar(&f.pkg, "package", "", "Package name of the go backend")
	fs.StringVar(&f.fn, "func", "", "Function name of the go backend")
	fs.StringVar(&f.typ, "type", "", "Result type of the go backend")
	fs.StringVar(&f.constructor, "constructor", "", "Result constructor of the go backend")
}

// apply copies the flags that were set on the command line into config.
// The flags are bound on the root command as well, and with
// TraverseChildren "entitygen --strict gen" sets them there, so every
// flag set the command line went through is consulted.
func (f *generateFlags) apply(config *entitygen.Config, sets ...*pflag.FlagSet) error {
	changed := func(name string) bool {
		for _, fs := range sets {
			if fs.Changed(name) {
				return true
			}
		}
		return false
	}

	if changed("entities") {
		// relative to the working directory, not to the config file
		abs, err := filepath.Abs(f.entities)
		if err != nil {
			return err
		}
		config.Entities = abs
	}
	if changed("output") {
		config.Output = f.output
	}
	if changed("backend") {
		config.Backend = f.backend
	}
	if changed("syntax") {
		config.Preset = f.preset
	}
	if changed("strict") {
		config.Strict = f.strict
	}
	if changed("package") {
		config.Go.Package = f.pkg
	}
	if changed("func") {
		config.Go.Func = f.fn
	}
	if changed("type") {
		config.Go.Type = f.typ
	}
	if changed("constructor") {
		config.Go.Constructor = f.constructor
	}
	return nil
}

func runGenerate(logger *zap.Logger, config entitygen.Config, stdout io.Writer) error {
	table, err := config.Table()
	if err != nil {
		return err
	}

	opts, err := config.Options()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	stats, err := entitygen.Generate(table, opts, &buf)
	if err != nil {
		return err
	}

	logger.Debug("Compiled entity table",
		zap.String("backend", string(opts.Backend)),
		zap.Bool("strict", opts.Strict),
		zap.Int("entities", stats.Entities),
		zap.Int("nodes", stats.Nodes),
		zap.Int("branches", stats.Branches),
		zap.Int("leaves", stats.Leaves))

	if config.Output == "" {
		_, err = buf.WriteTo(stdout)
		return err
	}

	if upToDate(config.Output, buf.Bytes()) {
		logger.Debug("Output is up to date", zap.String("path", config.Output))
		return nil
	}

	if err := os.WriteFile(config.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.Output, err)
	}
	logger.Info("Wrote decision procedure", zap.String("path", config.Output))
	return nil
}

// upToDate reports whether path already holds content. Unchanged output
// is left alone so its modification time only moves on real changes.
func upToDate(path string, content []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, content)
}
