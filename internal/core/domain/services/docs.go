// Package services provides domain services for the dispatch system:
// business logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - ETACalculator: Projects delivery arrival times from great-circle
//     distance and the configured drone cruise speed
package services
