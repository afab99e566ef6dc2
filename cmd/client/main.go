// Package main реализует консольный клиент CryptoVest.
//
// Использование:
//
//	client [-server URL] [-token-file PATH] register -name ... -username ... -email ... -phone ... -country ... -currency ... -password ...
//	client dashboard
//	client logout
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"cryptovest/internal/client"
	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/session"
	"cryptovest/pkg/logger"
)

const (
	EnvLoggerLevel = "CLIENT_LOGGER_LEVEL"

	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second

	ErrInitLogger     = "failed to initialize logger"
	ErrUnknownCommand = "unknown command"
	ErrCommandFailed  = "command failed"

	usage = "usage: client [-server URL] [-token-file PATH] register|dashboard|logout [flags]"
)

func main() {
	log, err := logger.NewLogger(logger.Development, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)
	ctx := logger.NewRequestIDContext(context.Background(), logger.GenerateRequestID())

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	global := flag.NewFlagSet("client", flag.ContinueOnError)
	server := global.String("server", defaultServer, "server base URL")
	tokenFile := global.String("token-file", session.DefaultTokenPath(), "where the session token is stored")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	c := client.New(*server, defaultTimeout, session.NewHolder(session.NewFileStorage(*tokenFile)))
	command, rest := global.Arg(0), global.Args()[1:]

	var out any
	switch command {
	case "register":
		req, err := parseRegister(rest)
		if err != nil {
			return 2
		}
		out, err = c.Register(ctx, req)
		if err != nil {
			return fail(ctx, command, err)
		}
	case "dashboard":
		profile, err := c.Dashboard(ctx)
		if errors.Is(err, client.ErrLoginRequired) {
			fmt.Fprintln(os.Stderr, "not signed in: run `client register` first")
			return 1
		}
		if err != nil {
			return fail(ctx, command, err)
		}
		out = profile
	case "logout":
		if err := c.Logout(ctx); err != nil {
			return fail(ctx, command, err)
		}
		return 0
	default:
		logger.Log(ctx).Error(ctx, ErrUnknownCommand, zap.String("command", command))
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fail(ctx, command, err)
	}
	return 0
}

func parseRegister(args []string) (*dto.RegisterRequest, error) {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var req dto.RegisterRequest
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.Country, "country", "", "country")
	fs.StringVar(&req.Currency, "currency", "", "preferred currency")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing register flags: %w", err)
	}
	return &req, nil
}

func fail(ctx context.Context, command string, err error) int {
	logger.Log(ctx).Error(ctx, ErrCommandFailed, zap.String("command", command), zap.Error(err))

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, apiErr.Message)
	}
	return 1
}
