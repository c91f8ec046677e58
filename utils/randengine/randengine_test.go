package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eikden/traffic-lights-optimization/utils/randengine"
)

func TestSameSeedSameSequence(t *testing.T) {
	first := randengine.New(42)
	second := randengine.New(42)

	for k := 0; k < 100; k++ {
		assert.Equal(t, first.GaussInt(2.1, 1), second.GaussInt(2.1, 1))
	}
	for k := 0; k < 100; k++ {
		assert.Equal(t, first.PTrue(0.5), second.PTrue(0.5))
	}
}

func TestGaussIntNonNegative(t *testing.T) {
	engine := randengine.New(1)
	for k := 0; k < 1000; k++ {
		assert.GreaterOrEqual(t, engine.GaussInt(0, 1), 0)
	}
}

func TestPTrueBounds(t *testing.T) {
	engine := randengine.New(1)
	for k := 0; k < 100; k++ {
		assert.False(t, engine.PTrue(0))
		assert.True(t, engine.PTrue(1))
	}
}
