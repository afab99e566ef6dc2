package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ListenFailureReturns(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	hookRan := false
	done := make(chan error, 1)
	go func() {
		done <- serve(context.Background(), fiber.New(), busy.Addr().String(), time.Second,
			func(context.Context) error {
				hookRan = true
				return nil
			})
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, hookRan)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after listen failure")
	}
}

func TestServe_ContextCancelStopsCleanly(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, fiber.New(), addr, time.Second) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
