// Package config defines the flag plumbing shared by the cardstack binaries,
// translating Cobra/Viper flag values into a strongly typed Options struct.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (CARDSTACK_LOG_LEVEL, ...).
const EnvPrefix = "CARDSTACK"

const (
	defaultListenAddr = ":9000"
	defaultHTTPAddr   = "127.0.0.1:8080"
	defaultServerAddr = "localhost:9000"
)

// Options holds the runtime configuration of a cardstack process.
type Options struct {
	LogLevel       string
	ListenAddr     string // TCP protocol listener (host)
	ServerAddr     string // TCP protocol server to dial (join)
	HTTPAddr       string // HTTP + websocket listener
	PlayerHealth   uint32
	OpponentHealth uint32
	OriginPatterns []string // websocket origins accepted besides same-host
}

// NewOptions returns Options populated with defaults.
func NewOptions() *Options {
	return &Options{
		LogLevel:       "info",
		ListenAddr:     defaultListenAddr,
		ServerAddr:     defaultServerAddr,
		HTTPAddr:       defaultHTTPAddr,
		PlayerHealth:   20,
		OpponentHealth: 20,
	}
}

// BindFlags registers the option flags on fs and returns their names.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&o.ListenAddr, "listen", o.ListenAddr, "Address the TCP protocol server listens on")
	fs.StringVar(&o.ServerAddr, "addr", o.ServerAddr, "Address of the TCP protocol server to join")
	fs.StringVar(&o.HTTPAddr, "http-addr", o.HTTPAddr, "Address the HTTP API listens on")
	fs.Uint32Var(&o.PlayerHealth, "player-health", o.PlayerHealth, "Starting player health")
	fs.Uint32Var(&o.OpponentHealth, "opponent-health", o.OpponentHealth, "Starting opponent health")
	fs.StringSliceVar(&o.OriginPatterns, "ws-origin", o.OriginPatterns, "Additional websocket origin patterns to accept")
	return []string{"log-level", "listen", "addr", "http-addr", "player-health", "opponent-health", "ws-origin"}
}

// Validate normalizes and checks the options.
func (o *Options) Validate() error {
	o.LogLevel = strings.ToLower(strings.TrimSpace(o.LogLevel))
	switch o.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid --log-level %q", o.LogLevel)
	}
	for name, addr := range map[string]string{"listen": o.ListenAddr, "addr": o.ServerAddr, "http-addr": o.HTTPAddr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid --%s %q: %w", name, addr, err)
		}
	}
	if o.PlayerHealth == 0 || o.OpponentHealth == 0 {
		return fmt.Errorf("starting health must be positive")
	}
	return nil
}

// BindViper lets CARDSTACK_* environment variables and an optional config file
// fill any flag the user did not set explicitly. CARDSTACK_CONFIG names the file;
// otherwise config.yaml is searched in the working and user config directories.
func BindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	configFile := os.Getenv(EnvPrefix + "_CONFIG")
	configureConfigFile(v, configFile)

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			ApplyViper(v, cmd.Flags(), cmd.PersistentFlags())
		}
	})
}

// ApplyViper copies values known to v into flags that were not set on the
// command line.
func ApplyViper(v *viper.Viper, flagSets ...*pflag.FlagSet) {
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				return
			}
			if !v.IsSet(f.Name) {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if val != "" {
				_ = f.Value.Set(val)
			}
		})
	}
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "cardstack"))
	}
	return dirs
}
