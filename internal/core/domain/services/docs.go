// Package services provides domain services that coordinate order items
// across the preparation pipeline.
//
// The package includes:
//   - StageRegistry: the single owner of stage membership for every live item,
//     enforcing FIFO service of the waiting area and the bounded number of
//     preparation slots
//
// All StageRegistry operations are linearizable; callers never see an item in
// two stages or a preparation count above capacity.
package services
