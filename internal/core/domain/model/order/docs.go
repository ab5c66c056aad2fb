// Package order contains the Order aggregate and its lifecycle state machine.
//
// An Order moves through fulfillment as
//
//	New -> Processing -> ReadyForPickup -> OutForDelivery -> Completed
//
// with Cancelled and Disputed reachable as side exits from any non-terminal
// state. Every mutation is a guarded compare-and-set: the caller supplies the
// status it last observed, and the aggregate rejects stale writes instead of
// silently overwriting concurrent changes made by another party.
//
// The aggregate owns its invariants:
//   - status changes only through the transition methods, never by assignment
//   - proof of delivery is write-once and only attached on completion
//   - delivery details are attached once and their identity fields never change
package order
