package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"visualmind/diagram"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Repair Mermaid source from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), diagram.Normalize(string(data)))
	return nil
}
