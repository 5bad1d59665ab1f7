package workers

import (
	"fmt"
	"log/slog"
)

// Worker is a background job with its own schedule.
type Worker interface {
	Start() error
	Stop()
	Name() string
}

// Manager starts and stops the background workers together.
type Manager struct {
	workers []Worker
	started []Worker
	logger  *slog.Logger
}

func NewManager(logger *slog.Logger, workers ...Worker) *Manager {
	return &Manager{
		workers: workers,
		logger:  logger.With("component", "workers"),
	}
}

// Start starts every worker. If one fails, the ones already running are
// stopped again.
func (m *Manager) Start() error {
	m.logger.Info("Starting worker manager", "worker_count", len(m.workers))

	for _, w := range m.workers {
		if err := w.Start(); err != nil {
			m.Stop()
			return fmt.Errorf("failed to start worker %s: %w", w.Name(), err)
		}
		m.started = append(m.started, w)
		m.logger.Info("Worker started", "name", w.Name())
	}

	return nil
}

// Stop stops running workers in reverse start order.
func (m *Manager) Stop() {
	for i := len(m.started) - 1; i >= 0; i-- {
		m.logger.Info("Stopping worker", "name", m.started[i].Name())
		m.started[i].Stop()
	}
	m.started = nil
	m.logger.Info("All workers stopped")
}
