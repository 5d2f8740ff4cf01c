package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quocvuong92/ai-exec/internal/logging"
)

// signalHandler lets a running child claim an interrupt. HandleSignal
// returns false when nothing claimed it.
type signalHandler interface {
	HandleSignal(sig os.Signal) bool
}

// routeSignals returns a context that is cancelled by SIGTERM, or by an
// interrupt that arrives while no child is running. An interrupt during a
// child run ends only the child.
func routeSignals(parent context.Context, h signalHandler) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case sig := <-sigChan:
				if dispatchSignal(sig, h) {
					continue
				}
				logging.Debug("signal ends session", logging.Fields{"signal": sig.String()})
				cancel()
			case <-ctx.Done():
				return
			}
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
		<-done
	}
}

// dispatchSignal reports whether sig was consumed by a running child
func dispatchSignal(sig os.Signal, h signalHandler) bool {
	return sig == os.Interrupt && h.HandleSignal(sig)
}
