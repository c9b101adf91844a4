package order

import (
	"tableserve/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	pending ──> preparing ──> ready ──> delivered
//	    │            │          │
//	    └────────────┴──────────┴──> cancelled
//
// Skipping intermediate states is permitted for staff-originated requests;
// only terminal states and the automated-origin restriction are enforced.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned on submission.
	Pending

	// Preparing indicates the kitchen has started working on the order.
	Preparing

	// Ready indicates the order is ready for pickup by the delivery agent.
	// Entering this status triggers an agent dispatch request.
	Ready

	// Delivered indicates the agent has delivered the order to the table.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal state; the order row is kept, never deleted.
	Cancelled

	// Completed is a legacy value written by a previous version of the
	// system. It is never a valid transition target but existing rows may
	// still carry it; listings treat it as terminal.
	Completed
)

// Origin distinguishes who requested a status transition.
type Origin int

const (
	// OriginStaff marks a transition requested by restaurant staff through
	// the dashboard endpoints.
	OriginStaff Origin = iota

	// OriginAutomated marks a transition requested by an external automated
	// actor, such as the delivery agent confirming a drop-off. Automated
	// requests may only set Delivered.
	OriginAutomated
)

// IsAutomated reports whether the origin is an automated actor.
func (o Origin) IsAutomated() bool {
	return o == OriginAutomated
}

// getStatusStrings returns a map of Status values to their string
// representations, including the legacy Completed value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Completed: "completed",
	}
}

// getTargetStatusStrings returns only the statuses that are acceptable as
// transition targets. Unknown and the legacy Completed are excluded.
func getTargetStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus parses a client-supplied status string into a Status.
// Only the five lifecycle values are accepted; the legacy "completed" value
// and anything unknown fail with a StatusIsInvalidError.
func ParseStatus(s string) (Status, error) {
	for status, str := range getTargetStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewStatusIsInvalidError(s)
}

// ParseStoredStatus parses a status string read back from persistence.
// Unlike ParseStatus it accepts the legacy "completed" value; anything
// unrecognized maps to Unknown rather than failing, so a single bad row
// cannot poison a listing.
func ParseStoredStatus(s string) Status {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status
		}
	}
	return Unknown
}

// String returns the lowercase name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is a valid transition target.
// Unknown, the legacy Completed, and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getTargetStatusStrings()[s]; !ok {
		return errs.NewStatusIsInvalidError(s.String())
	}
	return nil
}

// IsTerminal reports whether the status accepts no further transitions.
// Delivered and Cancelled are terminal by the lifecycle rules; the legacy
// Completed value is treated as terminal as well.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Completed
}

// TransitionTo validates a transition from the current status to target and
// returns the resulting status together with a dispatch flag.
//
// Rules enforced, in order:
//   - target must be one of the five lifecycle values
//   - an automated origin may only set Delivered
//   - a terminal current status rejects every target
//
// No other graph restriction applies: staff may skip intermediate states.
// The dispatch flag is true exactly when the transition lands on Ready,
// regardless of the previous status; repeated transitions into Ready each
// report it again.
func (s Status) TransitionTo(target Status, origin Origin) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return Unknown, false, err
	}

	if origin.IsAutomated() && target != Delivered {
		return Unknown, false, errs.NewTransitionForbiddenError(s.String(), target.String())
	}

	if s.IsTerminal() {
		return Unknown, false, errs.NewTransitionForbiddenError(s.String(), target.String())
	}

	return target, target == Ready, nil
}
