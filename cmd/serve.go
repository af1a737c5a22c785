package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/scoring"
	"github.com/spigell/ats-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching api over http",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8000)")
	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config, model := bootstrap()

	p, err := newParser(logger, model, config, nil)
	if err != nil {
		logger.Fatal("configuring the parser", zap.Error(err))
	}

	opts := []server.Option{server.WithVersion(version)}
	if config.Model.Enabled() {
		// load eagerly so a broken provider shows up at startup
		opts = append(opts, server.WithModelName(modelName(ctx, model)))
	}

	srv := server.New(config.Server, p, scoring.New(logger, model), logger, opts...)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving the api", zap.Error(err))
	}
}
