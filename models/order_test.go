package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]OrderStatus{
		{OrderPending, OrderOnCourse},
		{OrderPending, OrderFinished},
		{OrderPending, OrderCanceled},
		{OrderOnCourse, OrderFinished},
		{OrderOnCourse, OrderCanceled},
	}
	for _, e := range legal {
		require.True(t, CanTransition(e[0], e[1]), "%s -> %s", e[0], e[1])
	}

	illegal := [][2]OrderStatus{
		{OrderOnCourse, OrderPending},
		{OrderFinished, OrderPending},
		{OrderFinished, OrderOnCourse},
		{OrderFinished, OrderCanceled},
		{OrderCanceled, OrderPending},
		{OrderCanceled, OrderOnCourse},
		{OrderCanceled, OrderFinished},
	}
	for _, e := range illegal {
		require.False(t, CanTransition(e[0], e[1]), "%s -> %s", e[0], e[1])
	}
}

func TestSameStateIsAllowed(t *testing.T) {
	for s := range map[OrderStatus]bool{OrderPending: true, OrderOnCourse: true, OrderFinished: true, OrderCanceled: true} {
		require.True(t, CanTransition(s, s))
	}
}

func TestTerminalStatesAbsorb(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderOnCourse, OrderFinished, OrderCanceled}
	for _, terminal := range []OrderStatus{OrderFinished, OrderCanceled} {
		require.True(t, terminal.Terminal())
		for _, to := range all {
			if to == terminal {
				continue
			}
			require.False(t, CanTransition(terminal, to), "%s must be terminal", terminal)
		}
	}
	require.False(t, OrderPending.Terminal())
	require.False(t, OrderOnCourse.Terminal())
}

func TestStatusValid(t *testing.T) {
	require.True(t, OrderPending.Valid())
	require.True(t, OrderCanceled.Valid())
	require.False(t, OrderStatus("shipped").Valid())
	require.False(t, OrderStatus("").Valid())
}
