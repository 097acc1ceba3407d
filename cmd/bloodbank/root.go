package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adfharrison1/go-bloodbank/pkg/config"
	"github.com/adfharrison1/go-bloodbank/pkg/logging"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        logrus.FieldLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "bloodbank",
		Short:         "Blood bank record service",
		Long:          "bloodbank keeps blood types, hospitals, donors, recipients and their transactions.\nRun `bloodbank serve` for the REST API, or use list/add against a running server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./bloodbank.yaml or /etc/bloodbank/bloodbank.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("api-url", "http://localhost:5000", "base URL of a running bloodbank server")
	flags.Int("retries", 0, "client retries after transport errors")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = a.v.BindPFlag(config.KeyClientRetries, flags.Lookup("retries"))

	root.AddCommand(newServeCmd(a), newListCmd(a), newAddCmd(a), newSeedCmd(a), newKindsCmd(a))
	return root
}

func (a *app) load() error {
	if err := config.ReadConfigFile(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, nil)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}
