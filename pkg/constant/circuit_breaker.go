package constant

import "time"

// Circuit Breaker Configuration
const (
	// CircuitBreakerThreshold is the consecutive-failure count that trips the breaker.
	CircuitBreakerThreshold = 5

	// CircuitBreakerMaxRequests is the number of probe requests allowed while half-open.
	CircuitBreakerMaxRequests = 3

	// CircuitBreakerInterval is the cyclic period for clearing counts while closed.
	CircuitBreakerInterval = 60 * time.Second

	// CircuitBreakerTimeout is how long the breaker stays open before probing.
	CircuitBreakerTimeout = 30 * time.Second

	CircuitBreakerStateClosed   = "closed"
	CircuitBreakerStateOpen     = "open"
	CircuitBreakerStateHalfOpen = "half-open"
)
