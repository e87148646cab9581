package config

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestNewOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	if opts.HTTPAddr != "127.0.0.1:8080" {
		t.Fatalf("http addr default mismatch, got %s", opts.HTTPAddr)
	}
	if opts.PlayerHealth != 20 || opts.OpponentHealth != 20 {
		t.Fatalf("health defaults mismatch, got %d/%d", opts.PlayerHealth, opts.OpponentHealth)
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr string
	}{
		{"log level", func(o *Options) { o.LogLevel = "chatty" }, "invalid --log-level"},
		{"listen", func(o *Options) { o.ListenAddr = "9000" }, "invalid --listen"},
		{"http", func(o *Options) { o.HTTPAddr = "localhost" }, "invalid --http-addr"},
		{"health", func(o *Options) { o.OpponentHealth = 0 }, "starting health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.mutate(opts)
			err := opts.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateNormalizesLogLevel(t *testing.T) {
	opts := NewOptions()
	opts.LogLevel = " DEBUG "
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.LogLevel != "debug" {
		t.Fatalf("expected normalized level, got %q", opts.LogLevel)
	}
}

func TestApplyViperFillsUnsetFlags(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.BindFlags(fs)
	if err := fs.Parse([]string{"--listen", ":7000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	v := viper.New()
	v.Set("listen", ":1234")
	v.Set("opponent-health", "35")
	ApplyViper(v, fs)

	if opts.ListenAddr != ":7000" {
		t.Errorf("explicit flag overridden: %s", opts.ListenAddr)
	}
	if opts.OpponentHealth != 35 {
		t.Errorf("expected opponent health from viper, got %d", opts.OpponentHealth)
	}
}

func TestApplyViperReadsEnv(t *testing.T) {
	t.Setenv("CARDSTACK_LOG_LEVEL", "warn")
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.BindFlags(fs)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		t.Fatalf("bind flags: %v", err)
	}
	ApplyViper(v, fs)

	if opts.LogLevel != "warn" {
		t.Errorf("expected log level from env, got %q", opts.LogLevel)
	}
}
