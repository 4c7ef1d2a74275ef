package approval

import (
	"errors"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// Entry is an immutable ledger record of a decision taken on a route.
// Rejections always carry a reason; approvals may omit it.
type Entry struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	actorID    kernel.UUID
	action     Action
	reason     string
	createdAt  time.Time
}

// NewEntry records action taken by actorID on deliveryID at the given time.
func NewEntry(
	id, deliveryID, tenantID, actorID kernel.UUID,
	action Action,
	reason string,
	at time.Time,
) (*Entry, error) {
	reason = strings.TrimSpace(reason)

	if err := errors.Join(
		id.Validate(),
		requireID("delivery id", deliveryID),
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		action.Validate(),
	); err != nil {
		return nil, err
	}
	if action == Rejected && reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	return &Entry{
		id:         id,
		deliveryID: deliveryID,
		tenantID:   tenantID,
		actorID:    actorID,
		action:     action,
		reason:     reason,
		createdAt:  at,
	}, nil
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) DeliveryID() kernel.UUID {
	return e.deliveryID
}

func (e *Entry) TenantID() kernel.UUID {
	return e.tenantID
}

func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) Reason() string {
	return e.reason
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
