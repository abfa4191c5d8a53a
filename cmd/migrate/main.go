package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/compile"
	"github.com/compose-network/sendmessage-migrations/internal/deploy"
	"github.com/compose-network/sendmessage-migrations/internal/devnet"
	"github.com/compose-network/sendmessage-migrations/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "sendmessage-migrate"

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Deploy the SendMessage contract",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.Initialize(level)

		if err := configs.RegisterDefaults(viper.GetViper()); err != nil {
			return err
		}

		if configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")

			if execPath, err := os.Executable(); err == nil {
				viper.AddConfigPath(filepath.Dir(execPath))
			}
			viper.AddConfigPath(".")
			viper.AddConfigPath("./configs")
		}

		// Flags and the embedded defaults can provide all necessary configuration
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				const errMsg = "error reading config file"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
			slog.Debug("no config file found, will rely on flags and defaults")
		} else {
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		}

		if err := viper.Unmarshal(&configs.Values); err != nil {
			const errMsg = "unable to decode application config"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		slog.With("networks", len(configs.Values.Networks)).Debug("configuration loaded")

		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: config.yaml next to the binary, in . or ./configs)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(deploy.CMD)
	rootCmd.AddCommand(compile.CMD)
	rootCmd.AddCommand(devnet.CMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
