package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-dtn/go-moby/lib/config"
	"github.com/go-dtn/go-moby/lib/report"
	"github.com/go-dtn/go-moby/lib/sim"
	"github.com/go-dtn/go-moby/lib/util/logger"
	"github.com/go-dtn/go-moby/lib/util/signals"
)

var log = logger.GetLogger()

const version = "0.3.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "go-moby",
	Short: "Trust-weighted epidemic routing simulator for opportunistic networks",
	Long: `go-moby runs discrete-event simulations of the Moby routing protocol:
epidemic forwarding over intermittent contacts, weighted by trust scores
derived from common-contact overlap and communication history.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("go-moby", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the YAML settings file")
	rootCmd.AddCommand(runCmd, versionCmd)
}

func run() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := sim.NewContext(cfg)
	world, err := sim.BuildScenario(ctx)
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	signals.RegisterInterruptHandler(func() {
		close(stop)
	})
	if cfg.Scenario.ReportFile != "" {
		// SIGHUP dumps an interim report without ending the run.
		signals.RegisterReloadHandler(func() {
			if err := report.Write(cfg.Scenario.ReportFile, world.Snapshot()); err != nil {
				log.Errorf("interim report failed: %s", err)
			}
		})
	}
	go signals.Handle()
	defer signals.StopHandle()

	var httpSrv *report.Server
	if cfg.Scenario.HTTPAddr != "" {
		httpSrv = report.NewServer(cfg.Scenario.HTTPAddr, world)
		errc := httpSrv.Start()
		go func() {
			if err, ok := <-errc; ok && err != nil {
				log.Errorf("introspection endpoint failed: %s", err)
			}
		}()
		defer httpSrv.Close()
	}

	log.WithField("endTime", cfg.Scenario.EndTime).Debug("starting run")
	world.Run(stop)

	snap := world.Snapshot()
	fmt.Printf("t=%.0fs created=%d relayed=%d delivered=%d aborted=%d\n",
		snap.Time, snap.Events.Created, snap.Events.Relayed,
		snap.Events.Delivered, snap.Events.Aborted)

	if cfg.Scenario.ReportFile != "" {
		if err := report.Write(cfg.Scenario.ReportFile, snap); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
