package internal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/markusressel/turbine2go/internal/configuration"
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/markusressel/turbine2go/internal/simulation"
	"github.com/markusressel/turbine2go/internal/statistics"
	"github.com/markusressel/turbine2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
)

// InitializeObjects creates and registers a controller for every configured turbine.
// The turbine collector is registered with the given registerer if statistics are enabled.
func InitializeObjects(config configuration.Configuration, registerer prometheus.Registerer) []*controller.SpeedController {
	stepInterval := config.Simulation.TickRate.Seconds()
	if stepInterval <= 0 {
		stepInterval = controller.DefaultStepInterval
	}

	var controllers []*controller.SpeedController
	for _, turbineConfig := range config.Turbines {
		c := controller.NewSpeedController(turbineConfig, controller.WithStepInterval(stepInterval))
		controller.RegisterController(c)
		controllers = append(controllers, c)
	}

	if config.Statistics.Enabled {
		statistics.Register(registerer, statistics.NewTurbineCollector(controllers))
	}

	return controllers
}

// RunTurbines simulates every given controller in its own goroutine.
// It returns when all simulations have finished, the context is cancelled
// or the process receives SIGINT/SIGTERM. Traces are in controller order,
// a cancelled run has a shortened trace.
func RunTurbines(ctx context.Context, controllers []*controller.SpeedController, config configuration.SimulationConfig) ([]*simulation.Trace, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	traces := make([]*simulation.Trace, len(controllers))
	var wg sync.WaitGroup

	var g run.Group
	{
		// === turbine simulations
		for i, c := range controllers {
			simulator := simulation.NewSimulator(c, config)
			wg.Add(1)

			g.Add(func() error {
				ui.Info("Starting simulation of turbine '%s'", c.GetId())
				traces[i] = simulator.Run(ctx)
				wg.Done()
				ui.Info("Simulation of turbine %s stopped.", c.GetId())
				<-ctx.Done()
				return nil
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		// === completion
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		g.Add(func() error {
			select {
			case <-done:
				ui.Info("All simulations finished.")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err := g.Run()
	return traces, err
}
