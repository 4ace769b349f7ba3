// Package kernel provides the shared value objects of the cafe domain.
//
// The package includes:
//   - UUID: the identifier of every order item, wrapping github.com/google/uuid
//
// Values in this package are immutable and safe for concurrent use, so they can
// travel freely between client sessions and preparation goroutines.
package kernel
