package order

import "math"

// transitions is the order status machine: forward-only through the kitchen
// flow, with cancellation reachable from any non-terminal state. served and
// cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusServed, StatusCancelled},
	StatusServed:    {},
	StatusCancelled: {},
}

func ValidStatus(s OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// round2 rounds to two decimal places, half away from zero. Totals are
// computed once at creation and never recomputed.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
