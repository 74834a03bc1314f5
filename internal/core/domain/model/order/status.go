package order

import (
	"fmt"
	"strings"

	"oms/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	NEW ──┬──> PARTIAL ──┬──> FILLED
//	      │              ├──> CANCELED
//	      │              └──> EXPIRED ──> CANCELED (administrative)
//	      ├──> FILLED
//	      ├──> CANCELED
//	      ├──> REJECTED ──> CANCELED (administrative)
//	      └──> EXPIRED
//
// FILLED and CANCELED are final. REJECTED and EXPIRED end execution but may still be
// edited or canceled by an administrator.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of an accepted order.
	New

	// Partial indicates that part of the requested quantity has been filled.
	Partial

	// Filled indicates the whole requested quantity has been filled.
	Filled

	// Canceled indicates the order was withdrawn.
	Canceled

	// Rejected indicates the order was refused after admission.
	Rejected

	// Expired indicates the order reached the end of its time in force.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "UNKNOWN",
		New:      "NEW",
		Partial:  "PARTIAL",
		Filled:   "FILLED",
		Canceled: "CANCELED",
		Rejected: "REJECTED",
		Expired:  "EXPIRED",
	}
}

// transitions is the complete table of legal status changes.
// A status missing from the table, or mapped to an empty set, is final.
func transitions() map[Status][]Status {
	//nolint:exhaustive // Unknown, Filled and Canceled have no outgoing transitions
	return map[Status][]Status{
		New:      {Partial, Filled, Canceled, Rejected, Expired},
		Partial:  {Partial, Filled, Canceled, Expired},
		Rejected: {Canceled},
		Expired:  {Canceled},
	}
}

// ActiveStatuses returns the statuses of orders still eligible for execution.
func ActiveStatuses() []Status {
	return []Status{New, Partial}
}

// ParseStatus converts the textual form of a status (case-insensitive) to a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether the order may still be filled.
func (s Status) IsActive() bool {
	return s == New || s == Partial
}

// IsFinal reports whether no transition leaves s.
func (s Status) IsFinal() bool {
	return len(transitions()[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range transitions()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidateEditable rejects edits of completed or canceled orders.
func (s Status) ValidateEditable() error {
	switch s { //nolint:exhaustive // only final states are rejected
	case Filled, Canceled, Unknown:
		return errs.NewIllegalStateError("update", s.String(),
			fmt.Sprintf("cannot update order in status %s", s))
	default:
		return nil
	}
}

// Cancel transitions the status to Canceled.
//
// Invalid transitions:
//   - Filled -> Canceled ("cannot cancel a completed order")
//   - Canceled -> Canceled ("order is already canceled")
func (s Status) Cancel() (Status, error) {
	switch s { //nolint:exhaustive // remaining states are checked against the table
	case Filled:
		return Unknown, errs.NewIllegalStateError("cancel", s.String(), "cannot cancel a completed order")
	case Canceled:
		return Unknown, errs.NewIllegalStateError("cancel", s.String(), "order is already canceled")
	}
	return s.transition("cancel", Canceled)
}

// Reject transitions a NEW order to Rejected.
func (s Status) Reject() (Status, error) {
	return s.transition("reject", Rejected)
}

// Expire transitions an active order to Expired.
func (s Status) Expire() (Status, error) {
	if !s.IsActive() {
		return Unknown, errs.NewIllegalStateError("expire", s.String(), "only active orders can expire")
	}
	return s.transition("expire", Expired)
}

// Fill transitions an active order to Partial, or to Filled when complete is true.
func (s Status) Fill(complete bool) (Status, error) {
	next := Partial
	if complete {
		next = Filled
	}
	if !s.IsActive() {
		return Unknown, errs.NewIllegalStateError("fill", s.String(), "only active orders can be filled")
	}
	return s.transition("fill", next)
}

func (s Status) transition(operation string, next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewIllegalStateError(operation, s.String(),
			fmt.Sprintf("transition %s -> %s is not allowed", s, next))
	}
	return next, nil
}
