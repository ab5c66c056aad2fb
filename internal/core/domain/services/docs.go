// Package services provides domain services that implement business logic
// spanning more than one aggregate or requiring no aggregate state at all.
//
// The package includes:
//   - ETAProjector: derives live delivery progress, position and arrival time
//   - AccessPolicy: the single role-to-operation authorization table
package services
