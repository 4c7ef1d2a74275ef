package order

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Unassigned ──assign──> AwaitingRouteApproval ──approve──> EnRoute ──> InDelivery ──┬──> Delivered
//	    │                                                      ^   │                    └──> DeliveryFailed
//	    └──────────assign (route needs no approval)────────────┘   └──> Delivered / DeliveryFailed
//
// AwaitingRouteApproval and EnRoute orders can be released back to Unassigned.
// Only the moves out of EnRoute and InDelivery are requested by drivers (see
// ValidateTransition); the others are driven by the route lifecycle.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Unassigned orders are imported and not on any route.
	Unassigned

	// AwaitingRouteApproval orders sit on a route that a manager has not approved yet.
	AwaitingRouteApproval

	// EnRoute orders are on an active route and not yet started by the driver.
	EnRoute

	// InDelivery orders are being handed over by the driver.
	InDelivery

	// Delivered is terminal.
	Delivered

	// DeliveryFailed is terminal and always carries a failure reason.
	DeliveryFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "UNKNOWN",
		Unassigned:            "UNASSIGNED",
		AwaitingRouteApproval: "AWAITING_ROUTE_APPROVAL",
		EnRoute:               "EN_ROUTE",
		InDelivery:            "IN_DELIVERY",
		Delivered:             "DELIVERED",
		DeliveryFailed:        "DELIVERY_FAILED",
	}
}

// getStatusLabels maps statuses to the pt-BR labels shown to operators.
func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Unassigned:            "Sem rota",
		AwaitingRouteApproval: "Aguardando aprovação da rota",
		EnRoute:               "Em rota",
		InDelivery:            "Em entrega",
		Delivered:             "Entregue",
		DeliveryFailed:        "Não entregue",
	}
}

// driverTransitions lists the only moves a driver may request.
func driverTransitions() map[Status][]Status {
	//nolint:exhaustive // statuses without outgoing driver moves are omitted
	return map[Status][]Status{
		EnRoute:    {InDelivery, Delivered, DeliveryFailed},
		InDelivery: {Delivered, DeliveryFailed},
	}
}

// ParseStatus converts a canonical code ("EN_ROUTE") or its lowercase form into a Status.
func ParseStatus(s string) (Status, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == code {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known order status", s),
	)
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical code, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// Label returns the display label, or the canonical code when none exists.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return s.String()
}

// IsTerminal reports whether the order has been resolved by the driver.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == DeliveryFailed
}

// IsOnRoute reports whether the order is attached to a route and not yet started.
func (s Status) IsOnRoute() bool {
	return s == AwaitingRouteApproval || s == EnRoute
}

// ValidateTransition checks a driver-requested move from s to next.
//
// Legal moves:
//   - EnRoute -> InDelivery, Delivered, DeliveryFailed
//   - InDelivery -> Delivered, DeliveryFailed
//
// Every other pair, including staying in the same status, is rejected.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, allowed := range driverTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewInvalidStateTransitionError("order", nil, s, next)
}

// Assign returns the status an unassigned order takes when placed on a route.
func (s Status) Assign(routePending bool) (Status, error) {
	if s != Unassigned {
		return Unknown, errs.NewInvalidStateTransitionError("order", nil, s, AwaitingRouteApproval)
	}
	if routePending {
		return AwaitingRouteApproval, nil
	}
	return EnRoute, nil
}

// Approve moves a pending order to EnRoute.
func (s Status) Approve() (Status, error) {
	if s != AwaitingRouteApproval {
		return Unknown, errs.NewInvalidStateTransitionError("order", nil, s, EnRoute)
	}
	return EnRoute, nil
}

// RequireApproval moves an EnRoute order back to AwaitingRouteApproval.
func (s Status) RequireApproval() (Status, error) {
	if s != EnRoute {
		return Unknown, errs.NewInvalidStateTransitionError("order", nil, s, AwaitingRouteApproval)
	}
	return AwaitingRouteApproval, nil
}

// Release returns an order that has not been started to Unassigned.
func (s Status) Release() (Status, error) {
	if !s.IsOnRoute() {
		return Unknown, errs.NewInvalidStateTransitionError("order", nil, s, Unassigned)
	}
	return Unassigned, nil
}
