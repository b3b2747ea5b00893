package protoreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashFieldNumbersIgnoresOrder(t *testing.T) {
	a := hashFieldNumbers([]string{"id", "name", "email"})
	b := hashFieldNumbers([]string{"email", "id", "name"})
	assert.Equal(t, []int{a[2], a[0], a[1]}, b)

	seen := map[int]bool{}
	for _, n := range a {
		assert.False(t, seen[n])
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, maxFieldNumber)
		assert.False(t, n >= reservedRangeMin && n <= reservedRangeMax)
		seen[n] = true
	}
}

func TestHashFieldNumbersStableUnderAddition(t *testing.T) {
	before := hashFieldNumbers([]string{"id", "name"})
	after := hashFieldNumbers([]string{"id", "name", "created_at"})
	assert.Equal(t, before, after[:2])
}
