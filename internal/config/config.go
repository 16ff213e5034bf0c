// Package config defines the server's command-line surface. Its NewCommand
// wiring — a cobra.Command whose flags are bound into viper so environment
// variables override defaults, with pflag normalizing underscores to
// dashes — is grounded on the teacher corpus's Seednode-partybox
// config.go, replacing the teacher's own betting-tier JSON loader (Tien
// Len-specific) with Literature's own runtime knobs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every runtime-tunable knob for the Literature server.
type Config struct {
	Bind            string
	Port            int
	SeedRooms       int
	RoomIdleTimeout time.Duration
	Verbose         bool
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.SeedRooms < 0 {
		return fmt.Errorf("seed-rooms must not be negative: %d", c.SeedRooms)
	}
	if c.RoomIdleTimeout < 0 {
		return fmt.Errorf("room-idle-timeout must not be negative: %s", c.RoomIdleTimeout)
	}
	return nil
}

// NewCommand builds the root cobra.Command. run is invoked once flags are
// parsed and validated, keeping cmd/server's main() a thin wrapper.
func NewCommand(run func(*cobra.Command, *Config) error) *cobra.Command {
	cfg := &Config{}
	v := viper.New()
	v.SetEnvPrefix("LITERATURE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "literature-server",
		Short:         "Multiplayer server for the Literature (fish) card game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: LITERATURE_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: LITERATURE_PORT)")
	fs.IntVar(&cfg.SeedRooms, "seed-rooms", 5, "number of public rooms to pre-seed at startup (env: LITERATURE_SEED_ROOMS)")
	fs.DurationVar(&cfg.RoomIdleTimeout, "room-idle-timeout", 0, "reclaim empty, finished rooms idle longer than this; 0 disables reclamation (env: LITERATURE_ROOM_IDLE_TIMEOUT)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug-level logging (env: LITERATURE_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
