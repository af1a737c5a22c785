package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ats-matcher/internal/ai/provider"
	"github.com/spigell/ats-matcher/internal/report"
	"github.com/spigell/ats-matcher/internal/server"
)

const (
	app       = "ats-matcher"
	envPrefix = "ATS"
)

type Config struct {
	Model  *provider.Config `mapstructure:"model"`
	Server server.Config    `mapstructure:"server"`
	Report *ReportConfig    `mapstructure:"report"`
	Parser *ParserConfig    `mapstructure:"parser"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
}

type ParserConfig struct {
	// DisableSteps lists extraction steps that should not run.
	DisableSteps []string `mapstructure:"disable-steps"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-matcher scores a CV against a job description and explains the result",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	// keys must be known to viper for the env overrides to reach Unmarshal
	viper.SetDefault("model.provider", provider.None)
	viper.SetDefault("model.timeout", "30s")
	viper.SetDefault("model.max-retries", 3)
	viper.SetDefault("model.max-log-length", 200)
	viper.SetDefault("server.listen", ":8000")
	viper.SetDefault("server.max-upload-bytes", 10<<20)
	viper.SetDefault("server.allow-origins", "*")
	viper.SetDefault("report.format", report.FormatText)

	bindings := map[string]string{
		"model.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"model.openai.api-key-file": "OPENAI_API_KEY_FILE",
		"model.openai.base-url":     "OPENAI_BASE_URL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}
}

func initConfig() {
	// a missing .env file is not an error
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Report == nil {
		config.Report = &ReportConfig{Format: report.FormatText}
	}
	if config.Parser == nil {
		config.Parser = &ParserConfig{}
	}

	return config, nil
}
