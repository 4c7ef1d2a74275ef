package delivery

import (
	"fmt"
	"strings"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of a route.
//
//	AwaitingApproval ──approve──> Active ──(last order terminal)──> Finished
//	      │    ^                    │
//	      │    └──re-approval───────┘
//	      └──reject──> Rejected
//
// Finished and Rejected are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	// AwaitingApproval routes violate a tenant threshold and wait for a manager.
	AwaitingApproval
	// Active routes are released to the driver.
	Active
	// Finished routes have every order delivered or failed.
	Finished
	// Rejected routes were refused by a manager; their orders were released.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		AwaitingApproval: "AWAITING_APPROVAL",
		Active:           "ACTIVE",
		Finished:         "FINISHED",
		Rejected:         "REJECTED",
	}
}

func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		AwaitingApproval: "Aguardando aprovação",
		Active:           "Em andamento",
		Finished:         "Finalizada",
		Rejected:         "Rejeitada",
	}
}

// ParseStatus converts a canonical code ("ACTIVE") or its lowercase form into a Status.
func ParseStatus(s string) (Status, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == code {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known delivery status", s),
	)
}

// Statuses lists every valid status in declaration order.
func Statuses() []Status {
	return []Status{AwaitingApproval, Active, Finished, Rejected}
}

func (s Status) Validate() error {
	if _, ok := getStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return s.String()
}

func (s Status) IsTerminal() bool {
	return s == Finished || s == Rejected
}

// IsOpen reports whether the route still occupies its driver.
func (s Status) IsOpen() bool {
	return s == AwaitingApproval || s == Active
}

// OrderStatus returns the status carried by orders sitting on a route in status s.
// Only open routes have one.
func (s Status) OrderStatus() (order.Status, error) {
	switch s {
	case AwaitingApproval:
		return order.AwaitingRouteApproval, nil
	case Active:
		return order.EnRoute, nil
	default:
		return order.Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s routes do not accept orders", s),
		)
	}
}

func (s Status) Approve() (Status, error) {
	if s != AwaitingApproval {
		return Unknown, errs.NewInvalidStateTransitionError("delivery", nil, s, Active)
	}
	return Active, nil
}

func (s Status) Reject() (Status, error) {
	if s != AwaitingApproval {
		return Unknown, errs.NewInvalidStateTransitionError("delivery", nil, s, Rejected)
	}
	return Rejected, nil
}

func (s Status) Finish() (Status, error) {
	if s != Active {
		return Unknown, errs.NewInvalidStateTransitionError("delivery", nil, s, Finished)
	}
	return Finished, nil
}

// RequireReapproval moves an active route back to AwaitingApproval.
func (s Status) RequireReapproval() (Status, error) {
	if s != Active {
		return Unknown, errs.NewInvalidStateTransitionError("delivery", nil, s, AwaitingApproval)
	}
	return AwaitingApproval, nil
}
