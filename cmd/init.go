package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/entitygen"
	"github.com/gnolang/entitygen/entity"
)

var withTable bool

const defaultTableFile = "entities.yaml"

// initCmd: entitygen init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile, withTable)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
	},
}

func init() {
	initCmd.Flags().BoolVar(&withTable, "with-table", false, "Also write the built-in table to "+defaultTableFile+" and point the configuration at it")
}

func initConfigurationFile(configurationPath string, withTable bool) (string, error) {
	if configurationPath == "" {
		configurationPath = entitygen.DefaultConfigFile
	}

	config := entitygen.DefaultConfig()

	if withTable {
		tablePath := filepath.Join(filepath.Dir(configurationPath), defaultTableFile)
		if err := writeTableFile(tablePath, entity.Default()); err != nil {
			return "", err
		}
		config.Entities = defaultTableFile
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := entitygen.WriteConfig(f, config); err != nil {
		return "", err
	}
	return configurationPath, nil
}

func writeTableFile(path string, table entity.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return entity.Encode(f, table)
}
