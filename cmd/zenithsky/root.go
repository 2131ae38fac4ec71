package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
	"github.com/spacehole-rogue/zenith_sky/internal/logging"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:               "zenithsky",
		Short:             "Interactive zenith sky viewer",
		Long:              "zenithsky draws the sky around a zenith star and lets you pan, zoom and inspect it.",
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default .zenithsky.toml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "json", "log format: json or console")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newViewCmd(a),
		newRenderCmd(a),
		newListCmd(a),
		newGenerateCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	a.log = log
	a.log.Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.String("file", a.v.ConfigFileUsed()))
	return nil
}

// payloadPath picks the payload from the first argument, falling back to data.path.
func (a *app) payloadPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Data.Path
}

// loadPayload reads the payload at path. An empty path gives a nil payload,
// which every viewer treats as an empty sky.
func (a *app) loadPayload(path string) (*world.Payload, error) {
	if path == "" {
		a.log.Info("no payload given, showing an empty sky")
		return nil, nil
	}
	p, err := world.LoadPayloadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.log.Info("payload loaded", zap.String("path", path), zap.Int("objects", len(p.Objects)))
	return p, nil
}
