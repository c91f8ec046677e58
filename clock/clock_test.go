package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eikden/traffic-lights-optimization/clock"
)

func TestClockRunsTotalSteps(t *testing.T) {
	c := clock.New(5)
	count := 0
	for ; !c.Done(); c.Tick() {
		count++
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, int32(5), c.Step)
}

func TestClockZeroSteps(t *testing.T) {
	c := clock.New(0)
	assert.True(t, c.Done())
}

func TestClockString(t *testing.T) {
	c := clock.New(10000)
	c.Step = 3661
	assert.Equal(t, "01:01:01", c.String())

	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, s)
}
