// Package preparation drains the waiting area into the bounded preparation
// slots and moves finished items onto the tray.
//
// The Scheduler does not own any slot bookkeeping itself. Each preparation is
// a goroutine started only after the stage registry atomically granted a slot,
// so the registry's capacity is the only concurrency bound.
package preparation
