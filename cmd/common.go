package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai/provider"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/nlp"
	"github.com/spigell/ats-matcher/internal/parser"
	"github.com/spigell/ats-matcher/internal/textract"
)

// bootstrap builds the logger, the config and the optional linguistic model
// shared by every command.
func bootstrap() (*zap.Logger, *Config, *nlp.Handle) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	model := provider.NewHandle(config.Model, logger)
	if model == nil {
		logger.Debug("no linguistic model configured, using lexical matching")
	}

	return logger, config, model
}

// newParser creates a parser with the configured and requested steps disabled.
func newParser(logger *zap.Logger, model *nlp.Handle, config *Config, disabled []string) (*parser.Parser, error) {
	p := parser.New(logger, model)

	names := append(append([]string{}, config.Parser.DisableSteps...), disabled...)
	for _, name := range names {
		if err := parser.DisableByName(p.Steps(), name, "disabled by configuration"); err != nil {
			return nil, err
		}
	}

	for _, status := range parser.Describe(p.Steps()) {
		logger.Debug("extraction step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}
	return p, nil
}

// loadDocument reads a local file and decodes it to plain text.
func loadDocument(path string) (string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := textract.Decode(path, data)
	if err != nil {
		return "", 0, err
	}
	return text, len(data), nil
}

// modelName returns the name of the loaded linguistic model, if any.
func modelName(ctx context.Context, model *nlp.Handle) string {
	m, ok := model.Get(ctx)
	if !ok {
		return ""
	}
	return m.Name()
}
