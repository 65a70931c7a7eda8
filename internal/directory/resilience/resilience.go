package resilience

import (
	"context"

	"go.uber.org/zap"

	"employeedir/pkg/logger"
)

// Policy объединяет Circuit Breaker и повторные попытки.
type Policy struct {
	name           string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewPolicy создает политику с указанными настройками.
func NewPolicy(name string, retry RetryConfig, breaker CircuitBreakerConfig) *Policy {
	return &Policy{
		name:           name,
		circuitBreaker: NewCircuitBreaker(name, breaker),
		retry:          NewRetry(name, retry),
	}
}

// CircuitBreaker возвращает Circuit Breaker политики.
func (p *Policy) CircuitBreaker() *CircuitBreaker {
	return p.circuitBreaker
}

// Execute выполняет operation: серия повторов считается одним запросом для Circuit Breaker.
func (p *Policy) Execute(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("policy", p.name),
		zap.String("operation", operationName))

	return p.circuitBreaker.Execute(ctx, func() error {
		return p.retry.Execute(ctx, operation)
	})
}
