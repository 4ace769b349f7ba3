// Package sessions tracks which customers are connected and how to reach them.
//
// The Directory maps a unique identity to a Notifier, the push channel of the
// customer's connection. Delivery is best-effort and never blocks the caller,
// so a slow or vanished client cannot stall the preparation pipeline.
package sessions
