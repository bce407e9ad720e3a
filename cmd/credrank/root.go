package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/credrank/observability"
	"github.com/katalvlaran/credrank/registry"
)

const version = "0.3.0"

var (
	cfgFile       string
	metricsServer *observability.MetricsServer
)

// rootCmd is the base command; subcommands attach in Execute.
var rootCmd = &cobra.Command{
	Use:     "credrank",
	Short:   "credrank scores contribution graphs with pagerank",
	Version: version,
	Long: `credrank loads contribution graphs produced by adapters, merges them,
runs a pagerank score pass over the merged graph, and stores every run in a
local registry so scores can be listed and decomposed later.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. Read config file and environment before anything logs.
		if err := initializeConfig(); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		// 2. Bring up the process-wide logger from the logger section.
		var logCfg observability.LoggerConfig
		if err := viper.UnmarshalKey("logger", &logCfg); err != nil {
			return fmt.Errorf("failed to unmarshal logger config: %w", err)
		}
		observability.InitializeLogger(logCfg)

		logger := observability.GetLogger()
		logger.Debug("configuration loaded",
			zap.String("config_file", viper.ConfigFileUsed()),
			zap.String("registry", viper.GetString("registry.path")))

		// 3. Expose metrics for the duration of the run when asked to.
		if addr := viper.GetString("metrics.addr"); addr != "" {
			metricsServer = observability.NewMetricsServer(addr)
			metricsServer.Start()
		}

		return nil
	},
}

// Execute wires the subcommands and runs the CLI under ctx so an
// interrupt cancels in-flight score runs.
func Execute(ctx context.Context) error {
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newRunsCmd())

	err := rootCmd.ExecuteContext(ctx)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if stopErr := metricsServer.Stop(shutdownCtx); stopErr != nil {
			observability.GetLogger().Warn("metrics server shutdown failed", zap.Error(stopErr))
		}
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./credrank.yaml)")
	rootCmd.PersistentFlags().String("registry", "credrank.db", "path to the registry database")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address for the duration of the run")

	_ = viper.BindPFlag("registry.path", rootCmd.PersistentFlags().Lookup("registry"))
	_ = viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
}

// initializeConfig reads the config file and environment variables.
// A missing config file is fine; defaults and flags carry the run.
func initializeConfig() error {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.service_name", "credrank")
	viper.SetDefault("weights.default_to", 1.0)
	viper.SetDefault("weights.default_fro", 1.0)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("credrank")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CREDRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// openStore opens the registry the commands share.
func openStore() (*registry.Store, error) {
	path := viper.GetString("registry.path")
	store, err := registry.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry %s: %w", path, err)
	}

	return store, nil
}
