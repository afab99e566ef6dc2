package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

// State - состояние проверки защищенной страницы.
type State int

const (
	StateChecking State = iota
	StateAuthorized
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Причины перенаправления.
const (
	ReasonNone         = ""
	ReasonMissingToken = "missing token"
	ReasonInvalidToken = "invalid token"
	ReasonExpiredToken = "expired token"
	ReasonStorageError = "token storage unavailable"
)

const (
	methodCheck = "Check"

	msgGuardAuthorized  = "session authorized"
	msgGuardRedirecting = "session rejected, redirecting to login"
	msgGuardClearFailed = "failed to clear rejected session token"
)

// Decision - итог проверки.
type Decision struct {
	State   State
	Reason  string
	Cleared bool
}

// Guard решает, показывать ли защищенную страницу.
type Guard struct {
	holder *Holder
	now    func() time.Time
}

// GuardOption настраивает Guard.
type GuardOption func(*Guard)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) { g.now = now }
}

// NewGuard создает Guard поверх Holder.
func NewGuard(holder *Holder, opts ...GuardOption) *Guard {
	g := &Guard{holder: holder, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check проходит checking -> authorized | redirecting.
//
// Нет токена: redirecting, хранилище не трогается. Токен не разбирается, не
// содержит exp или истек: токен удаляется, redirecting. Иначе authorized.
// Токен с exp, равным текущему моменту, еще действителен.
func (g *Guard) Check(ctx context.Context) Decision {
	log := logger.Log(ctx).With(zap.String("method", methodCheck))

	state, exp, err := g.holder.inspect(ctx, g.now())

	reason := ReasonNone
	switch {
	case err != nil:
		log.Warn(ctx, msgGuardRedirecting, zap.String("reason", ReasonStorageError), zap.Error(err))
		return Decision{State: StateRedirecting, Reason: ReasonStorageError}
	case state == tokenMissing:
		log.Debug(ctx, msgGuardRedirecting, zap.String("reason", ReasonMissingToken))
		return Decision{State: StateRedirecting, Reason: ReasonMissingToken}
	case state == tokenMalformed:
		reason = ReasonInvalidToken
	case state == tokenExpired:
		reason = ReasonExpiredToken
	default:
		log.Debug(ctx, msgGuardAuthorized, zap.Time("expiresAt", exp))
		return Decision{State: StateAuthorized}
	}

	decision := Decision{State: StateRedirecting, Reason: reason, Cleared: true}
	if err := g.holder.Clear(ctx); err != nil {
		log.Warn(ctx, msgGuardClearFailed, zap.Error(err))
		decision.Cleared = false
	}
	log.Debug(ctx, msgGuardRedirecting, zap.String("reason", reason))
	return decision
}
