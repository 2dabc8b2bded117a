package pomomo

import "context"

type Permission uint8

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// Notifier displays best-effort messages to the user.
type Notifier interface {
	Permission(context.Context) Permission
	RequestPermission(context.Context) Permission
	Notify(ctx context.Context, title, body string) error
}
