package model

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

// allowedTransitions is the full lifecycle: the status only ever moves
// forward. DELIVERED is terminal and is never set through this API; it
// arrives from the chain worker only.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderShipped},
	OrderShipped: {OrderDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ChainValue maps the status onto the integer encoding the receipt contract
// stores on chain.
func (s OrderStatus) ChainValue() uint8 {
	switch s {
	case OrderShipped:
		return 1
	case OrderDelivered:
		return 2
	default:
		return 0
	}
}

func OrderStatusFromChain(value uint8) (OrderStatus, bool) {
	switch value {
	case 0:
		return OrderPending, true
	case 1:
		return OrderShipped, true
	case 2:
		return OrderDelivered, true
	}
	return "", false
}
