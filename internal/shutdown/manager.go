package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"chatapp/internal/logger"
)

const defaultStepTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type component struct {
	name string
	c    Shutdownable
}

type Manager struct {
	components  []component
	logger      logger.Logger
	mu          sync.Mutex
	once        sync.Once
	done        chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
	stepTimeout time.Duration
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:      log,
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		stepTimeout: defaultStepTimeout,
	}
}

// Register adds a component. Components shut down in reverse order of
// registration.
func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, c: c})
}

// Listen triggers Shutdown on SIGINT or SIGTERM, then calls onSignal so the
// caller can stop its event loop.
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.done:
		}
		signal.Stop(sigChan)
	}()
}

// Shutdown cancels Context and stops every component once. Later calls
// return immediately.
func (m *Manager) Shutdown() {
	m.once.Do(m.shutdown)
}

func (m *Manager) shutdown() {
	m.mu.Lock()
	components := make([]component, len(m.components))
	copy(components, m.components)
	m.mu.Unlock()

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(components),
	})

	m.cancel()

	for i := len(components) - 1; i >= 0; i-- {
		comp := components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			comp.c.Shutdown()
		}()

		select {
		case <-done:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": comp.name,
			})
		case <-time.After(m.stepTimeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": comp.name,
			})
		}
	}

	close(m.done)
	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Context is cancelled when shutdown starts.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done is closed when shutdown has finished.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
