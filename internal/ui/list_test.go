package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSorted(t *testing.T) {
	in := []string{"site10.com", "site2.com", "Alpha.com", "site1.com"}

	assert.Equal(
		t,
		[]string{"Alpha.com", "site1.com", "site2.com", "site10.com"},
		Sorted(in),
	)
	assert.Equal(t, "site10.com", in[0], "input is not modified")
}

func TestJoinSorted(t *testing.T) {
	assert.Equal(t, "none", JoinSorted(nil, "none"))
	assert.Equal(t, "a2, a10", JoinSorted([]string{"a10", "a2"}, "none"))
}
