package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Service is a long-running component started by main and stopped through
// context cancellation.
type Service interface {
	Name() string
	Start(ctx context.Context) error
}

type Group []Service

// Start runs every service in its own goroutine and blocks until all of them
// return. The first failure cancels the shared context so the rest can shut
// down; all errors are collected.
func (g Group) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)

	for _, svc := range g {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()

			slog.Info("starting service", "name", svc.Name())
			if err := svc.Start(ctx); err != nil && ctx.Err() == nil {
				slog.Error("service failed", "name", svc.Name(), "error", err)
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
				cancel()
				return
			}
			slog.Info("service stopped", "name", svc.Name())
		}(svc)
	}

	wg.Wait()
	return errs.ErrorOrNil()
}
