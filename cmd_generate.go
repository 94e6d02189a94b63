package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"visualmind/diagram"
	"visualmind/export"
)

var (
	generateHTML string
	generateRaw  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a diagram for a topic and print it",
	Long: `Generates a Mermaid diagram for the topic and prints the normalized source.

Example:
  visualmind generate "Cooking pasta" --html pasta.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateHTML, "html", "", "also export the diagram as an HTML page")
	generateCmd.Flags().BoolVar(&generateRaw, "raw", false, "print the raw model output first")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, agent, err := buildAgent()
	if err != nil {
		return err
	}

	topic := strings.Join(args, " ")
	res, err := agent.Generate(cmd.Context(), topic)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if generateRaw {
		fmt.Fprintln(out, res.Raw)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, diagram.Normalize(res.Mermaid))

	if generateHTML != "" {
		doc := export.Document{
			Topic:     res.Topic,
			Category:  string(res.Category),
			Mermaid:   res.Mermaid,
			Raw:       res.Raw,
			Timestamp: res.Timestamp,
		}
		if err := export.WriteFile(generateHTML, doc); err != nil {
			return err
		}
		logger.Info("exported diagram", zap.String("path", generateHTML))
	}
	return nil
}
