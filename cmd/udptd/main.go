// Program udptd runs the UDP tracker daemon.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openudpt/udptd/conf"
	"github.com/openudpt/udptd/logging"
	"github.com/openudpt/udptd/server"
)

var (
	configPath string
	logFile    string
	logLevel   string
	bindAddr   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "udptd",
		Short: "udptd UDP tracker daemon",
		RunE:  runDaemon,
	}
	addFlags(rootCmd.PersistentFlags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configPath, "config", "", "Path to an env-format config file")
	flags.StringVar(&logFile, "log-file", logging.Stdout, `Log destination ("-" for stdout)`)
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warning or error")
	flags.StringVar(&bindAddr, "addr", ":6969", "UDP bind address")
}

// applyFlags copies flag values onto the config. A flag the user set always
// wins; a flag default only fills an option the file and environment left
// unset.
func applyFlags(flags *pflag.FlagSet, cfg *conf.Config) {
	set := func(flag, key, value string) {
		if flags.Changed(flag) {
			cfg.Set(key, value)
			return
		}
		if _, err := cfg.Get(key); err != nil {
			cfg.Set(key, value)
		}
	}

	set("log-file", conf.LogFilename, logFile)
	set("log-level", conf.LogLevel, logLevel)
	set("addr", conf.BindAddress, bindAddr)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), cfg)

	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Close()

	logger.Infof("starting udptd instance %s", uuid.New())

	udp, err := server.NewUDP(cfg.GetDefault(conf.BindAddress, bindAddr), logger)
	if err != nil {
		logger.Errorf("%v", err)
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Infof("received %s, shutting down", sig)
		udp.Close()
	}()

	return udp.Serve()
}
