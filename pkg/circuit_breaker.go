package pkg

import (
	"errors"
	"fmt"
	"sync"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/sony/gobreaker"
)

// CircuitBreakerManager manages circuit breakers for external collaborators
// such as the clinic database.
type CircuitBreakerManager struct {
	breakers map[string]*gobreaker.CircuitBreaker
	mu       sync.RWMutex
	logger   log.Logger
}

// NewCircuitBreakerManager creates a new circuit breaker manager.
func NewCircuitBreakerManager(logger log.Logger) *CircuitBreakerManager {
	return &CircuitBreakerManager{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		logger:   logger,
	}
}

func (cbm *CircuitBreakerManager) newSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        fmt.Sprintf("collaborator-%s", name),
		MaxRequests: constant.CircuitBreakerMaxRequests,
		Interval:    constant.CircuitBreakerInterval,
		Timeout:     constant.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures >= constant.CircuitBreakerThreshold ||
				(counts.Requests >= 10 && failureRatio >= 0.5)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			cbm.logger.Warnf("Circuit Breaker [%s] state changed: %s -> %s", name, from.String(), to.String())

			switch to {
			case gobreaker.StateOpen:
				cbm.logger.Errorf("Circuit Breaker [%s] OPENED - collaborator is unhealthy, requests will fast-fail", name)
			case gobreaker.StateHalfOpen:
				cbm.logger.Infof("Circuit Breaker [%s] HALF-OPEN - testing collaborator recovery", name)
			case gobreaker.StateClosed:
				cbm.logger.Infof("Circuit Breaker [%s] CLOSED - collaborator is healthy", name)
			}
		},
	}
}

// GetOrCreate returns the existing circuit breaker or creates a new one.
func (cbm *CircuitBreakerManager) GetOrCreate(name string) *gobreaker.CircuitBreaker {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[name]
	cbm.mu.RUnlock()

	if exists {
		return breaker
	}

	cbm.mu.Lock()
	defer cbm.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists = cbm.breakers[name]; exists {
		return breaker
	}

	breaker = gobreaker.NewCircuitBreaker(cbm.newSettings(name))
	cbm.breakers[name] = breaker

	cbm.logger.Infof("Created circuit breaker for collaborator: %s", name)

	return breaker
}

// Execute runs a function through the circuit breaker.
func (cbm *CircuitBreakerManager) Execute(name string, fn func() (any, error)) (any, error) {
	breaker := cbm.GetOrCreate(name)

	result, err := breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			cbm.logger.Warnf("Circuit breaker [%s] is OPEN - request rejected immediately", name)
			return nil, fmt.Errorf("collaborator %s is currently unavailable (circuit breaker open): %w", name, err)
		}

		if errors.Is(err, gobreaker.ErrTooManyRequests) {
			cbm.logger.Warnf("Circuit breaker [%s] is HALF-OPEN - too many test requests", name)
			return nil, fmt.Errorf("collaborator %s is recovering (too many requests): %w", name, err)
		}
	}

	return result, err
}

// GetState returns the current state of a circuit breaker.
func (cbm *CircuitBreakerManager) GetState(name string) string {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[name]
	cbm.mu.RUnlock()

	if !exists {
		return "not_initialized"
	}

	switch breaker.State() {
	case gobreaker.StateClosed:
		return constant.CircuitBreakerStateClosed
	case gobreaker.StateOpen:
		return constant.CircuitBreakerStateOpen
	case gobreaker.StateHalfOpen:
		return constant.CircuitBreakerStateHalfOpen
	default:
		return "unknown"
	}
}

// IsHealthy returns true if the circuit breaker is closed or half-open.
func (cbm *CircuitBreakerManager) IsHealthy(name string) bool {
	return cbm.GetState(name) != constant.CircuitBreakerStateOpen
}
