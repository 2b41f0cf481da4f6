// Package order provides domain entities and business logic for delivery
// orders in the dispatch system. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, ownership, locations and lifecycle
//   - Status: A state machine enforcing valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, owner, origin and destination
//   - The lifecycle follows Pending -> Reserved -> InTransit -> Delivered/Failed,
//     with Withdrawn reachable from Pending and Reserved
//   - A drone is assigned exactly while the order is Reserved or InTransit;
//     terminal outcomes retain the last drone as history
//   - Transit data (current location, delivery estimate) appears only after pickup
//   - A handoff order re-enters the pending pool when a carrying drone breaks down
package order
