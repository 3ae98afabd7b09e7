package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ANALYTICS_TEST_KEY", "value")

	assert.Equal(t, "value", getEnv("ANALYTICS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("ANALYTICS_TEST_KEY_MISSING", "fallback"))
}

func TestNewConfigCacheTTL(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want time.Duration
	}{
		{name: "explicit value", env: "120", want: 120 * time.Second},
		{name: "zero accepted", env: "0", want: 0},
		{name: "non-numeric falls back to default", env: "soon", want: 60 * time.Second},
		{name: "negative falls back to default", env: "-5", want: 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CACHE_TTL_SECONDS", tt.env)
			assert.Equal(t, tt.want, newConfig().CacheTTL)
		})
	}
}
