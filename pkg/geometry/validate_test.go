package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestValidateLine(t *testing.T) {
	assert.NoError(t, ValidateLine(orb.LineString{{0, 0}, {1, 1}}))
	assert.ErrorIs(t, ValidateLine(orb.LineString{{0, 0}}), ErrTooFewPoints)
	assert.ErrorIs(t, ValidateLine(nil), ErrTooFewPoints)
	assert.ErrorIs(t, ValidateLine(orb.LineString{{0, 0}, {math.NaN(), 1}}), ErrNonFinite)
	assert.ErrorIs(t, ValidateLine(orb.LineString{{0, 0}, {math.Inf(1), 1}}), ErrNonFinite)
}

func TestValidateRing(t *testing.T) {
	assert.NoError(t, ValidateRing(orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}))
	assert.ErrorIs(t, ValidateRing(orb.Ring{{0, 0}, {1, 0}, {0, 0}, {1, 0}}), ErrDegenerateRing)
	assert.ErrorIs(t, ValidateRing(orb.Ring{{0, 0}, {1, 0}, {math.NaN(), 0}}), ErrNonFinite)
}
