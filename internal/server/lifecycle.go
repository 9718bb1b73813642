// Package server sequences the long-running pieces of the game server
// through startup, steady state, and shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is anything the lifecycle can bring up and tear down. Start
// blocks for as long as the service runs; a nil return means it came
// up clean or exited on request.
type Service interface {
	Start() error
	Stop()
}

// FuncService lifts a pair of functions into a Service, for components
// that do not carry their own type.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

func (f *FuncService) Start() error { return f.StartFn() }
func (f *FuncService) Stop()        { f.StopFn() }

// Lifecycle owns the ordered set of services behind the game server.
// Registration order is start order; shutdown walks the list backwards
// so dependents drain before the things they depend on.
type Lifecycle struct {
	logger *zap.Logger

	mu       sync.Mutex
	services []registration
}

type registration struct {
	name string
	svc  Service
}

// NewLifecycle builds an empty lifecycle around the given logger.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers a service under a name used in lifecycle log lines.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, registration{name: name, svc: svc})
}

// Run launches every registered service and then parks until one of
// three things happens: SIGINT or SIGTERM arrives, a service fails, or
// the context is cancelled. Whichever comes first, every service is
// stopped in reverse order before Run returns. A service failure is
// returned to the caller; a clean signal shutdown returns nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	failed := make(chan error, len(l.services))
	for _, reg := range l.services {
		reg := reg
		go func() {
			l.logger.Info("starting service", zap.String("service", reg.name))
			launched := time.Now()
			if err := reg.svc.Start(); err != nil {
				l.logger.Error("service failed",
					zap.String("service", reg.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(launched)),
				)
				failed <- fmt.Errorf("service %s: %w", reg.name, err)
				cancel()
			}
		}()
	}

	l.logger.Info("all services started",
		zap.Int("count", len(l.services)),
		zap.Duration("startup", time.Since(start)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down",
			zap.String("signal", sig.String()))
	case runErr = <-failed:
		l.logger.Error("service error, shutting down", zap.Error(runErr))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.stopAll()

	l.logger.Info("shutdown complete",
		zap.Duration("total_uptime", time.Since(start)))
	return runErr
}

// stopAll tears services down newest-first.
func (l *Lifecycle) stopAll() {
	begin := time.Now()
	for i := len(l.services) - 1; i >= 0; i-- {
		reg := l.services[i]
		stopStart := time.Now()
		l.logger.Info("stopping service", zap.String("service", reg.name))
		reg.svc.Stop()
		l.logger.Info("service stopped",
			zap.String("service", reg.name),
			zap.Duration("elapsed", time.Since(stopStart)),
		)
	}
	l.logger.Info("all services stopped",
		zap.Duration("shutdown_elapsed", time.Since(begin)))
}
