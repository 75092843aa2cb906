package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/asdm/internal/api"
	"github.com/talgya/asdm/internal/engine"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a paced simulation with the HTTP observer attached",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The grid endpoint needs per-worker detail.
			cfg.RecordWorkers = true

			port, _ := cmd.Flags().GetInt("port")
			interval, _ := cmd.Flags().GetDuration("interval")
			speed, _ := cmd.Flags().GetFloat64("speed")

			eco, err := engine.New(cfg)
			if err != nil {
				return err
			}

			server := &api.Server{Cfg: cfg, Port: port}
			server.Seed(eco.History())
			server.Start()

			runner := engine.NewRunner()
			runner.Interval = interval
			runner.Speed = speed
			runner.OnStep = server.Observe

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			interrupted := make(chan struct{})
			go func() {
				sig := <-sigCh
				slog.Info("received signal, stopping run", "signal", sig)
				runner.Stop()
				close(interrupted)
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "Observer: http://localhost:%d/api/v1/status\n", port)

			server.SetRunning(true)
			runner.Run(eco)
			server.SetRunning(false)

			// Keep serving the finished history until interrupted.
			if eco.CurrentStep() >= cfg.Steps {
				fmt.Fprintln(cmd.OutOrStdout(), "Run finished; serving history until interrupted (Ctrl+C)")
				<-interrupted
			}
			return nil
		},
	}

	cmd.Flags().Int("port", 8080, "HTTP port")
	cmd.Flags().Duration("interval", time.Second, "Wall-time pacing per step")
	cmd.Flags().Float64("speed", 1, "Pacing multiplier (0 starts paused)")
	return cmd
}
