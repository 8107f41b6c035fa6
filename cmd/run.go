package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/sexpread/lisp"
	"github.com/spf13/cobra"
)

var runExpression bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Read S-expressions and print each datum",
	Long:  `Read S-expression text supplied via the command line or files and print each datum.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for i := range sources {
			vs, err := lisp.ParseString(sources[i].name, sources[i].text)
			for _, v := range vs {
				fmt.Println(v)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}

type runSource struct {
	name string
	text string
}

func runReadSources(args []string) ([]runSource, error) {
	sources := make([]runSource, len(args))
	if runExpression {
		for i := range args {
			sources[i] = runSource{name: "arg", text: args[i]}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = runSource{name: path, text: string(b)}
	}
	return sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as S-expression text")
}
