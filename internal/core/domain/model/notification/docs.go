// Package notification models the per-recipient messages produced when an
// order changes state. Notifications are immutable apart from their read flag
// and are unique per recipient, role, order and transition.
package notification
