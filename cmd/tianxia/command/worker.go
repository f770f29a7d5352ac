package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-tianxia/internal/listener"
	"github.com/pixil98/go-tianxia/internal/messaging"
	"github.com/pixil98/go-tianxia/internal/table"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	pub := messaging.NewNatsPublisher(natsServer, cfg.Table.name())

	tbl, err := cfg.Table.BuildTable(dict, pub)
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}
	manager := table.NewManager(tbl, pub)

	// Create Listeners
	cm := listener.NewConnectionManager(manager)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm, tbl)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d-%s", i, l.Protocol)] = &afterReady{ready: natsServer.Ready(), worker: worker}
	}

	return service.WorkerList{
		"nats":      natsServer,
		"table":     manager,
		"listeners": &listeners,
	}, nil
}

// afterReady holds a worker back until ready is closed, so no session
// subscribes before the message server is up.
type afterReady struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (a *afterReady) Start(ctx context.Context) error {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return nil
	}
	return a.worker.Start(ctx)
}
