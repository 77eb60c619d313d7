// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"context"
	"log/slog"
	"sync"
)

// Severity grades a Notification.
type Severity int

// Severities, from least to most severe.
const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// String returns "info", "warn" or "error".
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	default:
		return "error"
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Notification is a user-facing report of a problem that did not stop a
// render.
type Notification struct {
	Severity Severity
	Message  string
	Details  string
	Err      error

	// Key groups notifications for deduplication. Empty means
	// Message+Details.
	Key string
}

func (n Notification) key() string {
	if n.Key != "" {
		return n.Key
	}
	return n.Message + "\x00" + n.Details
}

// Notifier receives notifications from a worker. Notify is called on the
// worker goroutine and must not block for long.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// notifications delivers each distinct notification once until reset.
type notifications struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	target Notifier
	log    func() *slog.Logger
}

func newNotifications(target Notifier, log func() *slog.Logger) *notifications {
	return &notifications{
		seen:   make(map[string]struct{}),
		target: target,
		log:    log,
	}
}

// report logs and forwards n unless an equal notification was already
// reported. It returns whether n was delivered.
func (ns *notifications) report(n Notification) bool {
	ns.mu.Lock()
	k := n.key()
	if _, dup := ns.seen[k]; dup {
		ns.mu.Unlock()
		return false
	}
	ns.seen[k] = struct{}{}
	ns.mu.Unlock()

	attrs := []any{slog.String("details", n.Details)}
	if n.Err != nil {
		attrs = append(attrs, slog.Any("error", n.Err))
	}
	ns.log().Log(context.Background(), n.Severity.level(), n.Message, attrs...)
	if ns.target != nil {
		ns.target.Notify(n)
	}
	return true
}

func (ns *notifications) reset() {
	ns.mu.Lock()
	clear(ns.seen)
	ns.mu.Unlock()
}
