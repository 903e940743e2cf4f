package checkout

// State tracks a single checkout attempt. Confirmed, Failed and Cancelled are
// terminal; a new attempt always starts a fresh machine with a fresh order.
type State int

const (
	StateIdle State = iota
	StateScriptLoading
	StateAwaitingGatewayOrder
	StateWidgetOpen
	StateAwaitingVerification
	StateConfirmed
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScriptLoading:
		return "script_loading"
	case StateAwaitingGatewayOrder:
		return "awaiting_gateway_order"
	case StateWidgetOpen:
		return "widget_open"
	case StateAwaitingVerification:
		return "awaiting_verification"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are allowed.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFailed || s == StateCancelled
}
