package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/ats-matcher/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Extract skills, experience and other signals from a single document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Bool("jd", false, "treat the document as a job description")
	parseCmd.Flags().StringP("format", "f", report.FormatYAML, "output format: json or yaml")
	parseCmd.Flags().StringSlice("disable-step", nil, "extraction steps to skip")
}

func parse(cmd *cobra.Command, path string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config, model := bootstrap()

	isJD, _ := cmd.Flags().GetBool("jd")
	format, _ := cmd.Flags().GetString("format")
	disabled, _ := cmd.Flags().GetStringSlice("disable-step")

	p, err := newParser(logger, model, config, disabled)
	if err != nil {
		logger.Fatal("configuring the parser", zap.Error(err))
	}

	parsed, err := parseFile(ctx, p, logger, path, isJD)
	if err != nil {
		logger.Fatal("parsing the document", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case report.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(parsed.doc)
	case report.FormatYAML:
		err = yaml.NewEncoder(out).Encode(parsed.doc)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		logger.Fatal("printing the document", zap.Error(err))
	}
}
