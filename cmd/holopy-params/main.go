// Package main provides the CLI entrypoint for holopy-params.
//
// holopy-params inspects and edits saved inference models:
//   - show: list a model's free parameters, names, and guesses
//   - tie: declare parameters equal and re-save the shrunk model
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PeBelle/holopy/internal/common"
	"github.com/PeBelle/holopy/model"
)

var rootCmd = &cobra.Command{
	Use:   "holopy-params",
	Short: "Inspect and edit saved inference model parameters",
}

var showCmd = &cobra.Command{
	Use:   "show <model.yaml>",
	Short: "List a model's free parameters and guesses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := model.LoadFile(args[0])
		if err != nil {
			return err
		}

		names := m.ParameterNames()
		guesses := m.InitialGuess()
		params := m.Parameters()

		for i, name := range names {
			fmt.Printf("%3d  %-24s %-22v guess=%v\n", i, name, params[name], guesses[i])
		}

		return nil
	},
}

var (
	tieName   string
	tieOutput string
)

var tieCmd = &cobra.Command{
	Use:   "tie <model.yaml> <parameter>...",
	Short: "Tie two or more parameters together and re-save the model",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := common.First(args)

		m, err := model.LoadFile(path)
		if err != nil {
			return err
		}

		if err := m.AddTie(args[1:], tieName); err != nil {
			return err
		}

		out := tieOutput
		if out == "" {
			out = path
		}

		if err := m.WriteFile(out); err != nil {
			return err
		}

		fmt.Printf("tied %v, %d parameters remain, wrote %s\n", args[1:], len(m.ParameterNames()), out)

		return nil
	},
}

func main() {
	tieCmd.Flags().StringVar(&tieName, "name", "", "name for the tied parameter")
	tieCmd.Flags().StringVarP(&tieOutput, "output", "o", "", "output path (default: overwrite input)")

	rootCmd.AddCommand(showCmd, tieCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
