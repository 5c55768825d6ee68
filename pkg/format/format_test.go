package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAmountAndBalance(t *testing.T) {
	assert.Equal(t, "2.50", Amount(2.5))
	assert.Equal(t, "0.00", Amount(0))
	assert.Equal(t, "1000.00 KRO", Balance(1000))
}

func TestCommand(t *testing.T) {
	assert.Equal(t, "kr send kabc 10", Command("kr", "send", "kabc", "10"))
	assert.Equal(t, "kr", Command("kr"))
}

func TestArg(t *testing.T) {
	assert.Equal(t, "<address>", Arg("address", false))
	assert.Equal(t, "[sort]", Arg("sort", true))
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "unknown", RelativeTime(time.Time{}))
	assert.Equal(t, "30 seconds ago", RelativeTime(now.Add(-30*time.Second)))
	assert.Equal(t, "5 minutes ago", RelativeTime(now.Add(-5*time.Minute)))
	assert.Equal(t, "3 hours ago", RelativeTime(now.Add(-3*time.Hour)))
	assert.Equal(t, "2 days ago", RelativeTime(now.Add(-48*time.Hour)))
	assert.Equal(t, "2 months ago", RelativeTime(now.Add(-65*24*time.Hour)))
	assert.Equal(t, "1 years ago", RelativeTime(now.Add(-400*24*time.Hour)))
}
