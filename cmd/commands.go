package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukydev/fleet-fuel/internal/cli"
	"github.com/ukydev/fleet-fuel/internal/config"
	"github.com/ukydev/fleet-fuel/internal/logging"
	"github.com/ukydev/fleet-fuel/internal/registry"
	"github.com/ukydev/fleet-fuel/internal/simulator"
)

const version = "0.1.0"

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configFile string
	envFile    string

	cfg    *config.Config
	logger *logrus.Logger
	fleet  *registry.Registry
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "fleetfuel",
		Short: "Track fuel for a small vehicle fleet",
		Long: `fleetfuel keeps an in-memory fleet of vehicles and lets you refuel
them or use fuel through an interactive menu. Every operation is checked
against the vehicle's tank capacity.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewDriver(a.fleet, a.in, a.out, a.logger).Run(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./fleetfuel.yaml if present)")
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default: .env if present)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text or json)")

	root.AddCommand(newSimulateCmd(a), newVersionCmd())
	return root
}

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Burn and refill fuel across the fleet for a number of ticks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := simulator.Run(cmd.Context(), a.fleet, simulator.Options{
				Ticks: a.cfg.SimTicks,
				Seed:  a.cfg.SimSeed,
			}, a.logger)
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}

			fmt.Fprintf(a.out, "Simulated %d ticks: %.2f L used, %.2f L refuelled in %d refuels\n\n",
				sum.Ticks, sum.Consumed, sum.Refuelled, sum.Refuels)
			return a.fleet.ShowAll(a.out)
		},
	}
	cmd.Flags().Int("ticks", 20, "number of simulation ticks")
	cmd.Flags().Int64("seed", 1, "random seed")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fleetfuel v%s\n", version)
		},
	}
}

// setup loads config, builds the logger and seeds the fleet.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.errOut)
	if err != nil {
		return err
	}

	fleet := registry.New(logger)
	if err := fleet.Seed(cfg.Vehicles); err != nil {
		return fmt.Errorf("seed fleet: %w", err)
	}
	logger.WithField("vehicles", fleet.Len()).Info("Fleet ready")

	a.cfg, a.logger, a.fleet = cfg, logger, fleet
	return nil
}
