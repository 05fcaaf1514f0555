package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/classtrack/classtrack/internal/profile"
	"github.com/classtrack/classtrack/internal/version"
	"github.com/classtrack/classtrack/server"
	"github.com/classtrack/classtrack/store"
	"github.com/classtrack/classtrack/store/db"
)

const greetingBanner = `classtrack - school information service`

var rootCmd = &cobra.Command{
	Use:   "classtrack",
	Short: "A school information service with schedule and teaching-load management",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile := &profile.Profile{
			Mode:            viper.GetString("mode"),
			Addr:            viper.GetString("addr"),
			Port:            viper.GetInt("port"),
			Data:            viper.GetString("data"),
			Driver:          viper.GetString("driver"),
			DSN:             viper.GetString("dsn"),
			InstanceURL:     viper.GetString("instance-url"),
			Secret:          viper.GetString("secret"),
			TeachingLoadCap: viper.GetFloat64("teaching-load-cap"),
		}
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("failed to validate profile: %w", err)
		}
		instanceProfile.Version = version.GetCurrentVersion(instanceProfile.Mode)

		logLevel := slog.LevelInfo
		if instanceProfile.IsDev() {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}
		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			cancel()
		}()

		println(greetingBanner)
		fmt.Printf("version %s has been started on %s:%d\n", instanceProfile.Version, instanceProfile.Addr, instanceProfile.Port)

		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("failed to run server: %w", err)
		}
		s.Shutdown(context.Background())
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")
	rootCmd.PersistentFlags().String("instance-url", "", "the url of your classtrack instance")
	rootCmd.PersistentFlags().String("secret", "", "secret used to sign access tokens")
	rootCmd.PersistentFlags().Float64("teaching-load-cap", profile.DefaultTeachingLoadCap, "maximum weekly teaching hours per teacher")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "instance-url", "secret", "teaching-load-cap"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("classtrack")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
