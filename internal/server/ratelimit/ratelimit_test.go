package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_WithinBurst(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, PerMinute: 60, Burst: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d should be allowed", i)
	}
}

func TestAllow_BurstExhausted(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, PerMinute: 60, Burst: 2})
	defer l.Stop()

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.1")
	allowed, wait := l.Allow("10.0.0.1")

	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, PerMinute: 60, Burst: 1})
	defer l.Stop()

	l.Allow("10.0.0.1")
	allowed, _ := l.Allow("10.0.0.2")

	assert.True(t, allowed)
}

func TestAllow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, PerMinute: 1, Burst: 1})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		assert.True(t, allowed)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 120, cfg.PerMinute)
	assert.Equal(t, 20, cfg.Burst)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 30, cfg.PerMinute)
	assert.Equal(t, 5, cfg.Burst)
}
