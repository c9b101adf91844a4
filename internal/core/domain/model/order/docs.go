// Package order provides the domain entities and business logic for order
// management in the table service system. It implements the Order aggregate
// root with item consolidation, pricing arithmetic, and lifecycle management.
//
// The package includes:
//   - Order: the aggregate root managing identity, items, pricing, and lifecycle
//   - LineItem / Consolidate: named product entries merged by exact name
//   - Status: a state machine that enforces the order lifecycle rules
//
// Key business rules:
//   - Orders must reference a table and carry at least one consolidated item
//   - The total price is always recomputed server-side from the item lines;
//     client-supplied totals are never trusted
//   - The lifecycle runs pending -> preparing -> ready -> delivered, with
//     cancelled reachable from any non-terminal state
//   - Delivered and cancelled are terminal; cancellation is a transition,
//     never a deletion
//   - An automated (agent-originated) transition may only confirm delivery
//   - Every transition landing on ready signals that an agent dispatch is
//     required, once per call, with no deduplication across calls
package order
