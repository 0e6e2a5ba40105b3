package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/entitygen/entity"
	"github.com/gnolang/entitygen/internal/trie"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	okStyle      = color.New(color.FgGreen, color.Bold)
)

var checkCmd = &cobra.Command{
	Use:   "check [table.yaml]",
	Short: "Validate an entity table",
	Long: `Reports duplicate names, empty names and out-of-range codepoints.
Checks the configured table when no path is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		source := config.EntitiesPath()
		if len(args) == 1 {
			source = args[0]
		}

		problems, err := runCheck(logger, source, cmd.OutOrStdout())
		if err != nil {
			logger.Error("Check failed", zap.Error(err))
			os.Exit(1)
		}
		if problems > 0 {
			os.Exit(1)
		}
	},
}

// runCheck prints every problem of the table at source (the built-in
// table when empty) and returns how many were found.
func runCheck(logger *zap.Logger, source string, w io.Writer) (int, error) {
	table := entity.Default()
	name := "<built-in>"
	if source != "" {
		var err error
		table, err = entity.LoadFile(source)
		if err != nil {
			return 0, err
		}
		name = source
	}

	problems := table.Check()
	for _, p := range problems {
		fmt.Fprint(w, formatProblem(name, p))
	}
	if len(problems) > 0 {
		fmt.Fprintf(w, "%s %d problem(s) in %d entities\n", errorStyle.Sprint("error:"), len(problems), len(table))
		return len(problems), nil
	}

	t, err := trie.Build(table)
	if err != nil {
		// Check covers everything Build rejects except an empty table
		fmt.Fprint(w, formatProblem(name, err))
		return 1, nil
	}

	logger.Debug("Entity table is valid", zap.String("source", name), zap.Int("nodes", t.Len()))
	fmt.Fprintf(w, "%s %d entities, %d trie nodes\n", okStyle.Sprint("ok:"), len(table), t.Len())
	return 0, nil
}

func formatProblem(source string, err error) string {
	return errorStyle.Sprint("error: ") + ruleStyle.Sprint(problemRule(err)) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprint(source) + "\n" +
		lineStyle.Sprint("  | ") + messageStyle.Sprint(err.Error()) + "\n\n"
}

func problemRule(err error) string {
	var dup *entity.DuplicateError
	switch {
	case errors.As(err, &dup):
		return "duplicate-name"
	case errors.Is(err, entity.ErrEmptyName):
		return "empty-name"
	case errors.Is(err, entity.ErrInvalidCodepoint):
		return "invalid-codepoint"
	case errors.Is(err, trie.ErrEmptyTable):
		return "empty-table"
	default:
		return "invalid-table"
	}
}
