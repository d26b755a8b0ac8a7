// Package cmd provides the root command and CLI setup for fixtura.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	"fixtura.dev/pkg/fixtura/internal/controller"
	"fixtura.dev/pkg/fixtura/internal/domain"
)

const rootLongDescription = `Fixtura records how test fixtures are configured as an append-only log of
events. Each test class (the root path) opens a configuration session, creates
named fixture items and overrides their members; every later read replays that
history onto the defaults derived from the type catalog.

Events are stored in SQLite by default; set store.driver to postgres for a
shared store or to spill for a throw-away session.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fixtura",
		Short:        "Event-sourced fixture configuration",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String(storeDriverFlagName, viper.GetString(storeDriverKey), "event store driver: sqlite, postgres or spill")
	bindFlagToConfig(flags.Lookup(storeDriverFlagName), storeDriverKey)

	flags.String(storeDSNFlagName, viper.GetString(storeDSNKey), "event store data source (file path for sqlite, URL for postgres)")
	bindFlagToConfig(flags.Lookup(storeDSNFlagName), storeDSNKey)

	flags.String(catalogFlagName, viper.GetString(catalogPathKey), "path of the YAML type catalog")
	bindFlagToConfig(flags.Lookup(catalogFlagName), catalogPathKey)

	flags.Bool(plainFlagName, viper.GetBool(uiPlainKey), "disable the interactive pager")
	bindFlagToConfig(flags.Lookup(plainFlagName), uiPlainKey)

	flags.String(metricsFileFlagName, viper.GetString(metricsFileKey), "write command metrics in Prometheus text format to this file")
	bindFlagToConfig(flags.Lookup(metricsFileFlagName), metricsFileKey)

	flags.String(logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolP(verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// runWorkflow wires the engine from the current configuration, runs fn and releases
// everything again. The UI is started in mode for the duration of fn.
func runWorkflow(cmd *cobra.Command, mode controller.StartOption, fn func(ctx context.Context, wf domain.Workflow) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openEventStore(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close event store: %w", closeErr))
		}
	}()

	catalog, err := adapter.NewYAMLTypeCatalog(viper.GetString(catalogPathKey))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()

	metrics, err := domain.NewMetricsObserver(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	defer func() {
		if writeErr := writeMetrics(registry); writeErr != nil {
			slog.Warn("Failed to write metrics", "error", writeErr)
		}
	}()

	useTTY := !viper.GetBool(uiPlainKey) && controller.IsTTY(cmd.OutOrStdout())
	ui := controller.NewUI(cmd, useTTY)

	wf := domain.NewWorkflow(
		ui,
		store,
		adapter.NewInProcessEventBus(store),
		catalog,
		domain.Observers(domain.LogObserver{}, metrics),
	)
	defer wf.Shutdown()

	if err := ui.Start(ctx, mode); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer ui.Close(ctx)

	if err := fn(ctx, wf); err != nil {
		return err
	}

	ui.Wait(ctx)

	return nil
}

func openEventStore(ctx context.Context) (adapter.EventStore, error) {
	driver := viper.GetString(storeDriverKey)
	if driver == storeDriverSpill {
		return adapter.NewSpillEventStore()
	}

	dialect, err := adapter.ParseSQLDialect(driver)
	if err != nil {
		return nil, err
	}

	slog.Debug("Opening event store", "driver", dialect, "dsn", viper.GetString(storeDSNKey))

	return adapter.NewSQLEventStore(ctx, dialect, viper.GetString(storeDSNKey))
}

func writeMetrics(gatherer prometheus.Gatherer) error {
	path := viper.GetString(metricsFileKey)
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return prometheus.WriteToTextfile(path, gatherer)
}
