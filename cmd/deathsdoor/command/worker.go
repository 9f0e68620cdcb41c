package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"

	"github.com/deathsdoor/deathsdoor/internal/driver"
	"github.com/deathsdoor/deathsdoor/internal/game"
	"github.com/deathsdoor/deathsdoor/internal/messaging"
	"github.com/deathsdoor/deathsdoor/internal/overlay"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Embedded message bus
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewStatePublisher(nats)

	// Game state
	catalog, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	registry, err := cfg.Storage.BuildRegistry(catalog)
	if err != nil {
		return nil, fmt.Errorf("building script registry: %w", err)
	}
	manager := game.NewManager(catalog, registry, game.WithSnapshotSink(publisher))

	// Overlay timer, ticked by the driver
	timer := overlay.NewTimer(publisher)

	var driverOpts []driver.DriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	drv := driver.NewDriver([]driver.Manager{timer}, driverOpts...)

	// Storyteller console
	listener := cfg.Console.BuildListener(manager, timer, publisher)

	return service.WorkerList{
		"nats":    nats,
		"driver":  drv,
		"console": listener,
	}, nil
}
