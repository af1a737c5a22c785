package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/parser"
	"github.com/spigell/ats-matcher/internal/report"
	"github.com/spigell/ats-matcher/internal/scoring"
)

const (
	PromptDone             = "Done"
	PromptSkills           = "Show skills breakdown"
	PromptResponsibilities = "Show responsibility matches"
	PromptFeedback         = "Show feedback"
	PromptDumpJSON         = "Dump report to JSON file"
	PromptDumpYAML         = "Dump report to YAML file"
	PromptExportPDF        = "Export report to PDF"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptDone, PromptSkills, PromptResponsibilities, PromptFeedback, PromptDumpJSON, PromptDumpYAML, PromptExportPDF},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a CV against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("jd", "", "job description file (pdf, docx, txt, html)")
	matchCmd.Flags().String("cv", "", "resume file (pdf, docx, txt, html)")
	matchCmd.Flags().StringP("format", "f", "", "report format: text, json or yaml (default from config)")
	matchCmd.Flags().String("pdf", "", "also write the report as pdf to this path")
	matchCmd.Flags().BoolP("yes", "y", false, "do not open the interactive menu after the report")
	matchCmd.Flags().StringSlice("disable-step", nil, "extraction steps to skip")

	matchCmd.MarkFlagRequired("jd")
	matchCmd.MarkFlagRequired("cv")
}

type loaded struct {
	file  string
	bytes int
	doc   *ats.ParsedDocument
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config, model := bootstrap()

	jdPath, _ := cmd.Flags().GetString("jd")
	cvPath, _ := cmd.Flags().GetString("cv")
	format, _ := cmd.Flags().GetString("format")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	disabled, _ := cmd.Flags().GetStringSlice("disable-step")

	if format == "" {
		format = config.Report.Format
	}

	p, err := newParser(logger, model, config, disabled)
	if err != nil {
		logger.Fatal("configuring the parser", zap.Error(err))
	}

	logger.Info("starting the match", zap.String("jd", jdPath), zap.String("cv", cvPath))

	var jd, cv loaded
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jd, err = parseFile(gctx, p, logger, jdPath, true)
		return err
	})
	g.Go(func() error {
		var err error
		cv, err = parseFile(gctx, p, logger, cvPath, false)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Fatal("parsing documents", zap.Error(err))
	}

	result := scoring.New(logger, model).Score(ctx, jd.doc, cv.doc)
	if result.Error != "" {
		logger.Error("match calculation failed", zap.String("reason", result.Error))
	}
	logger.Info("match calculation completed", zap.Float64("score", result.Score))

	rep := report.New(jd.file, jd.doc, cv.file, cv.doc, result)
	rep.JD.Bytes, rep.CV.Bytes = jd.bytes, cv.bytes
	rep.Model = modelName(ctx, model)

	out := cmd.OutOrStdout()
	if err := report.Render(out, rep, format); err != nil {
		logger.Fatal("rendering the report", zap.Error(err))
	}

	if pdfPath != "" {
		if err := report.WritePDFFile(pdfPath, rep); err != nil {
			logger.Fatal("writing the pdf report", zap.Error(err))
		}
		logger.Info("pdf report written", zap.String("filename", pdfPath))
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(cmd, action, logger, rep); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func parseFile(ctx context.Context, p *parser.Parser, log *zap.Logger, path string, isJD bool) (loaded, error) {
	log = logger.WithDocument(log, isJD, path)

	text, size, err := loadDocument(path)
	if err != nil {
		return loaded{}, fmt.Errorf("%s: %w", logger.DocumentKind(isJD), err)
	}

	doc, err := p.Parse(ctx, text, isJD)
	if err != nil {
		return loaded{}, fmt.Errorf("%s: %w", logger.DocumentKind(isJD), err)
	}

	log.Info("document parsed", zap.Int("skills", len(doc.Skills)), zap.Float64("years", doc.Experience.Years))
	return loaded{file: path, bytes: size, doc: doc}, nil
}

func handleAction(cmd *cobra.Command, action string, logger *zap.Logger, rep *report.Report) error {
	out := cmd.OutOrStdout()

	switch action {
	case PromptDone:
		logger.Info("exiting", zap.String("reason", "done"))
		return errExit
	case PromptSkills:
		printLines(out, report.SkillLines(rep.Result))
		return nil
	case PromptResponsibilities:
		printLines(out, report.ResponsibilityLines(rep.Result))
		return nil
	case PromptFeedback:
		printLines(out, []string{
			"experience: " + rep.Result.ExperienceFeedback,
			"compensation: " + rep.Result.CompensationFeedback,
			"academics: " + rep.Result.AcademicFeedback,
		})
		return nil
	case PromptDumpJSON, PromptDumpYAML:
		format := report.FormatJSON
		if action == PromptDumpYAML {
			format = report.FormatYAML
		}
		filename, err := report.DumpToTmpFile(rep, format)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExportPDF:
		return exportPDF(logger, rep)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportPDF(logger *zap.Logger, rep *report.Report) error {
	pathPrompt := promptui.Prompt{
		Label:   "PDF file",
		Default: "ats-report.pdf",
	}

	path, err := pathPrompt.Run()
	if err != nil {
		return err
	}

	if err := report.WritePDFFile(path, rep); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	logger.Info("pdf report written", zap.String("filename", path))
	return nil
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
