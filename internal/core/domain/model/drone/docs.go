// Package drone provides domain entities and business logic for delivery
// drones in the dispatch system. It implements the Drone aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Drone: The aggregate root managing identity, position, liveness and the held order
//   - Status: A state machine enforcing valid drone status transitions
//
// Key business rules:
//   - A drone is created lazily on first contact from an external identity,
//     starting Idle at coordinates (0,0)
//   - A drone holds an order exactly while it is Reserved or InTransit
//   - Breakdown clears the held order and takes the drone out of service;
//     a repaired drone returns to Idle
//   - Location and heartbeat updates are unconditional in every status
package drone
