package util_test

import (
	"testing"

	"github.com/JOSU10xD/MapMyCampus/pkg/util"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 3.14, util.RoundFloat(3.14159, 2))
	assert.Equal(t, 10.0, util.RoundFloat(9.9999, 2))
}

func TestReverseG(t *testing.T) {
	odd := []int{1, 2, 3}
	util.ReverseG(odd)
	assert.Equal(t, []int{3, 2, 1}, odd)

	even := []string{"a", "b"}
	util.ReverseG(even)
	assert.Equal(t, []string{"b", "a"}, even)
}
