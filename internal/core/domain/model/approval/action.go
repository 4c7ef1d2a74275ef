package approval

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
)

// Action is the kind of event recorded in the ledger.
type Action int

const (
	Unknown Action = iota
	Approved
	Rejected
	ReapprovalRequired
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		Unknown:            "unknown",
		Approved:           "approved",
		Rejected:           "rejected",
		ReapprovalRequired: "re-approval-required",
	}
}

func getActionLabels() map[Action]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Action]string{
		Approved:           "Aprovada",
		Rejected:           "Rejeitada",
		ReapprovalRequired: "Nova aprovação necessária",
	}
}

// ParseAction accepts the stored codes case-insensitively.
func ParseAction(s string) (Action, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	for action, str := range getActionStrings() {
		if action != Unknown && str == code {
			return action, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"action is invalid",
		fmt.Errorf("%q is not a known approval action", s),
	)
}

func (a Action) Validate() error {
	if _, ok := getActionLabels()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return getActionStrings()[Unknown]
}

func (a Action) Label() string {
	if label, ok := getActionLabels()[a]; ok {
		return label
	}
	return a.String()
}
