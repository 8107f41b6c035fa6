package cmd

import (
	"os"

	"github.com/luthersystems/sexpread/repl"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sexpread",
	Short: "A generic S-expression reader",
	Long: `sexpread reads S-expression syntax and prints the resulting datums.
Without arguments it starts an interactive read-print loop.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl("> ")
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
