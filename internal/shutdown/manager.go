package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"forest-coverage/internal/logger"
)

const componentTimeout = 10 * time.Second

// Manager cancels the session context on SIGINT/SIGTERM and runs the
// registered cleanup hooks in reverse order. The session loop checks the
// context between images.
type Manager struct {
	hooks  []hook
	logger logger.Logger
	mu     sync.Mutex
	once   sync.Once
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

type hook struct {
	name string
	fn   func()
}

func NewManager(parent context.Context, log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(parent)

	return &Manager{
		logger: log,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a cleanup hook.
func (m *Manager) Register(name string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Listen starts watching for termination signals until the manager shuts
// down.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.done:
		}
	}()
}

// Shutdown cancels the context and runs every hook once. Later calls are
// no-ops.
func (m *Manager) Shutdown() {
	m.once.Do(func() {
		m.cancel()

		m.mu.Lock()
		hooks := append([]hook(nil), m.hooks...)
		m.mu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			h := hooks[i]

			finished := make(chan struct{})
			go func() {
				defer close(finished)
				h.fn()
			}()

			select {
			case <-finished:
			case <-time.After(componentTimeout):
				m.logger.Warning("ShutdownManager", "cleanup timeout", map[string]interface{}{
					"component": h.name,
				})
			}
		}

		close(m.done)
		m.logger.Debug("ShutdownManager", "shutdown sequence completed", map[string]interface{}{
			"components": len(hooks),
		})
	})
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
