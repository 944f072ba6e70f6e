package ports

import "context"

// AdminDirectory lists the users holding the admin role. Every admin is
// notified of approval requests and dispatches.
type AdminDirectory interface {
	AdminIDs(ctx context.Context) ([]string, error)
}
