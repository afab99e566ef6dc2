package resilience

import (
	"context"

	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

const logExecuting = "executing operation with resilience"

// ServiceResilience объединяет circuit breaker и повторы для одного внешнего сервиса.
// Повторы выполняются внутри breaker: серия неудачных попыток считается одной ошибкой.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку с настройками по умолчанию.
func NewServiceResilience(serviceName string) *ServiceResilience {
	return NewServiceResilienceWithConfig(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

// NewServiceResilienceWithConfig создает обертку с заданными настройками.
func NewServiceResilienceWithConfig(serviceName string, cb CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cb),
		retry:          NewRetry(serviceName, retry),
	}
}

// Execute выполняет operation с отказоустойчивостью.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, logExecuting,
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// State возвращает состояние circuit breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// Do выполняет operation с отказоустойчивостью и возвращает ее результат.
func Do[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, operationName, func() error {
		value, err := operation(ctx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
