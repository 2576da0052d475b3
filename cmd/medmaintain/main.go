package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guardianhealth/medmaintain/internal/app"
	"github.com/guardianhealth/medmaintain/internal/config"
	"github.com/guardianhealth/medmaintain/internal/version"
)

const configFileName = "config"

var home, _ = os.UserHomeDir()

var rootCmd = &cobra.Command{
	Use:     "medmaintain",
	Short:   "Maintenance daemon for hospital biomedical equipment",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Addr:      viper.GetString("addr"),
			AuthToken: viper.GetString("auth_token"),
			DBPath:    viper.GetString("db_path"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		cmd.SilenceUsage = true
		showHeader()

		// first run: persist the effective config so later runs and
		// operators have a file to edit
		cfgPath := viper.ConfigFileUsed()
		if cfgPath == "" {
			cfgPath = config.DefaultConfigPath
		}
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			if err := cfg.Save(cfgPath); err != nil {
				slog.Warn("config write", "path", cfgPath, "error", err)
			} else {
				slog.Info("config written", "path", cfgPath)
			}
		}

		slog.Info("medmaintain", "version", version.Version, "revision", version.Revision, "build", version.BuildDate)

		a, err := app.New(cfg)
		if err != nil {
			return err
		}

		defer slog.Info("Bye!")
		if err := a.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("daemon start", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("addr", "a", config.DefaultAddr, "Address to bind the control plane server")
	rootCmd.Flags().StringP("token", "t", "", "Access token for the control plane server")
	rootCmd.Flags().StringP("db", "d", config.DefaultDBPath, "Path to the snapshot database")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "MedMaintain config file")
}

func main() {
	// local .env is optional
	godotenv.Load()

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.AddConfigPath(filepath.Join(home, ".medmaintain"))
		viper.AddConfigPath(filepath.Join(home, ".config/medmaintain"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, ok := err.(viper.ConfigFileNotFoundError)
		if !enoent && !ok {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("auth_token", cmd.Flags().Lookup("token"))
	viper.BindPFlag("db_path", cmd.Flags().Lookup("db"))

	viper.SetEnvPrefix("MEDMAINTAIN")
	viper.AutomaticEnv()

	return nil
}

func showHeader() {
	color.New(color.FgHiCyan, color.Bold).
		Printf("%s %s\n", version.AppName, version.Short())
}
