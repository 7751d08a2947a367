package pkg

import (
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"

	"github.com/stretchr/testify/assert"
)

func Test_fullJitter(t *testing.T) {
	assert.Equal(t, time.Duration(0), FullJitter(0))
	assert.Equal(t, time.Duration(0), FullJitter(-time.Second))

	for i := 0; i < 100; i++ {
		jittered := FullJitter(time.Second)

		assert.GreaterOrEqual(t, jittered, time.Duration(0))
		assert.Less(t, jittered, time.Second)
	}

	// Base delays beyond the cap are clamped before sampling.
	for i := 0; i < 100; i++ {
		jittered := FullJitter(time.Hour)

		assert.Less(t, jittered, constant.ProducerMaxBackoff)
	}
}

func Test_nextBackoff(t *testing.T) {
	assert.Equal(t, time.Second, NextBackoff(500*time.Millisecond))
	assert.Equal(t, 2*time.Second, NextBackoff(time.Second))
	assert.Equal(t, constant.ProducerMaxBackoff, NextBackoff(constant.ProducerMaxBackoff))
	assert.Equal(t, constant.ProducerMaxBackoff, NextBackoff(8*time.Second))
}
