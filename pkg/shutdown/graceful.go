// Package shutdown реализует корректное завершение приложения по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

// Hook - шаг завершения работы.
type Hook func(ctx context.Context) error

const (
	logSignalReceived = "shutdown signal received"
	logContextDone    = "parent context finished, shutting down"
	logHookFailed     = "shutdown hook failed"
	logTimeout        = "shutdown timed out"
)

// Wait блокируется до сигнала SIGINT/SIGTERM или отмены ctx, затем выполняет hooks
// по порядку. Все hooks делят один бюджет timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)

	select {
	case sig := <-sigCh:
		log.Info(ctx, logSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, logContextDone)
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет hooks по порядку в пределах timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, hook := range hooks {
			if ctx.Err() != nil {
				return
			}
			if err := hook(ctx); err != nil {
				log.Error(ctx, logHookFailed, zap.Int("hook", i), zap.Error(err))
			}
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, logTimeout, zap.Duration("timeout", timeout))
	}
}
