package domain

// Order status lifecycle. Transitions run forward only; delivered and
// cancelled are terminal.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var statusTransitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
