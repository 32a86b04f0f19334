package notify

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"
)

// Permission mirrors the notification permission states of a desktop
// session: default means not yet asked.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ParsePermission accepts the config spelling; anything unknown is default.
func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted, PermissionDenied:
		return Permission(s)
	}
	return PermissionDefault
}

// Notifier delivers a native notification.
type Notifier interface {
	Notify(title, message string) bool
}

// Desktop sends notifications through the OS notification service, but only
// once permission has been granted.
type Desktop struct {
	log  *slog.Logger
	send func(title, message string) error

	mu         sync.Mutex
	permission Permission
}

func NewDesktop(log *slog.Logger, p Permission) *Desktop {
	return &Desktop{
		log:        log,
		permission: p,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// RequestPermission is called on the first user interaction. A default
// permission becomes granted; a denied one stays denied.
func (d *Desktop) RequestPermission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.permission == PermissionDefault {
		d.permission = PermissionGranted
		d.log.Info("notification permission granted")
	}
	return d.permission
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

func (d *Desktop) SetPermission(p Permission) {
	d.mu.Lock()
	d.permission = p
	d.mu.Unlock()
}

// Notify reports whether a native notification was sent. Without permission
// it does nothing; there is no request-then-fire flow.
func (d *Desktop) Notify(title, message string) bool {
	if d.Permission() != PermissionGranted {
		return false
	}
	if err := d.send(title, message); err != nil {
		d.log.Warn("desktop notification failed", "error", fmt.Errorf("notify %q: %w", title, err))
		return false
	}
	return true
}
