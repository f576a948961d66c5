package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderPending, OrderDelivered, false},
		{OrderShipped, OrderPending, false},
		{OrderDelivered, OrderPending, false},
		{OrderDelivered, OrderShipped, false},
		{OrderPending, OrderPending, false},
		{OrderShipped, OrderShipped, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusChainRoundTrip(t *testing.T) {
	for _, status := range []OrderStatus{OrderPending, OrderShipped, OrderDelivered} {
		decoded, ok := OrderStatusFromChain(status.ChainValue())
		assert.True(t, ok)
		assert.Equal(t, status, decoded)
	}

	_, ok := OrderStatusFromChain(3)
	assert.False(t, ok)
}
