package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "gencode",
		Short:        "gencode",
		SilenceUsage: true,
		Long:         `CLI front-end for the genco code generation library: compile quasi-quote templates and render them against YAML bindings. See README.md.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	langName     string
	bindingsFile string
	level        int
	verbose      bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&langName, "lang", "l", "go", "target language backend; see list-backends")
	rootCmd.PersistentFlags().StringVarP(&bindingsFile, "bindings", "b", "", "path to a YAML file with template bindings")
	rootCmd.PersistentFlags().IntVar(&level, "level", 0, "initial indentation level")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return rootCmd.Execute()
}

func init() {
}
