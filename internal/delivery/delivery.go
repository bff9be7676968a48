// Package delivery groups the long-running entry points started by cmd/identity.
package delivery

import "context"

// Delivery is a server or background loop that runs until its lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
