package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitOffsetDefaults(t *testing.T) {
	l, o := LimitOffset(nil, nil)
	require.Equal(t, DefaultPageSize, l)
	require.Equal(t, 0, o)
}

func TestLimitOffsetExplicit(t *testing.T) {
	limit, offset := 25, 50
	l, o := LimitOffset(&limit, &offset)
	require.Equal(t, 25, l)
	require.Equal(t, 50, o)
}

func TestLimitOffsetBounds(t *testing.T) {
	huge, negative := 1000, -5
	l, o := LimitOffset(&huge, &negative)
	require.Equal(t, 100, l)
	require.Equal(t, 0, o)

	zero := 0
	l, _ = LimitOffset(&zero, nil)
	require.Equal(t, DefaultPageSize, l)
}
