package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnolang/entitygen"
)

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "entitygen",
	Short: "entitygen - compile an entity table into a decision procedure",
	Long: `Compiles an ordered table of named entities into nested conditionals that
resolve a candidate character run to the codepoint it names.
Run without arguments to print the procedure for the built-in table.`,
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand: behaves like gen
		genCmd.Run(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file (default "+entitygen.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	genFlags.register(rootCmd.Flags())

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger logs to stderr so stdout only carries generated code.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return config.Build()
}

// loadConfig returns the explicit configuration file, the default file
// when it exists, or the built-in defaults.
func loadConfig(path string) (entitygen.Config, error) {
	if path != "" {
		return entitygen.LoadConfig(path)
	}

	config, err := entitygen.LoadConfig(entitygen.DefaultConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		return entitygen.DefaultConfig(), nil
	}
	return config, err
}
