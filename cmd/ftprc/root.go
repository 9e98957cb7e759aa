package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ftprc/cmd/ftprc/commands"
	"github.com/walteh/ftprc/pkg/config"
	"github.com/walteh/ftprc/pkg/ftpsession"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile  string
	debug       bool
	flagHost    string
	flagPort    int
	flagUser    string
	flagPass    string
	flagTimeout int
	flagTLS     bool
)

// defaultConfigFiles are probed, in order, when --config is not given.
var defaultConfigFiles = []string{".ftprc.yaml", ".ftprc.yml", ".ftprc.json", ".ftprc.hcl"}

// newRootOpts creates the shared dependencies for the subcommands.
func newRootOpts() *commands.RootOpts {
	return &commands.RootOpts{
		Dial: func(ctx context.Context) (ftpsession.Session, error) {
			cn, err := resolveConnection(ctx)
			if err != nil {
				return nil, err
			}
			return ftpsession.Connect(ctx, cn)
		},
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flagHost, "host", "", "server host")
	cmd.PersistentFlags().IntVar(&flagPort, "port", 0, "server port (default 21)")
	cmd.PersistentFlags().StringVar(&flagUser, "username", "", "login username")
	cmd.PersistentFlags().StringVar(&flagPass, "password", "", "login password")
	cmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "socket timeout in seconds (default 3600)")
	cmd.PersistentFlags().BoolVar(&flagTLS, "tls", false, "use explicit TLS (FTPS)")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// resolveConnection layers connection settings: defaults, then config file,
// then FTPRC_* environment variables, then flags.
func resolveConnection(ctx context.Context) (config.Connection, error) {
	cn := config.Default()

	path := configFile
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return cn, errors.Errorf("loading config: %w", err)
		}
		cn = loaded
	}

	if err := config.ApplyEnv(&cn); err != nil {
		return cn, err
	}

	if flagHost != "" {
		cn.Host = flagHost
	}
	if flagPort != 0 {
		cn.Port = flagPort
	}
	if flagUser != "" {
		cn.Username = flagUser
	}
	if flagPass != "" {
		cn.Password = flagPass
	}
	if flagTimeout != 0 {
		cn.TimeoutSeconds = flagTimeout
	}
	if flagTLS {
		cn.ExplicitTLS = true
	}

	if err := cn.Validate(); err != nil {
		return cn, errors.Errorf("invalid connection settings: %w", err)
	}
	return cn, nil
}

// TODO(dr.methodical): 🧪 Add tests for config/env/flag precedence in resolveConnection

