// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"errors"
	"log/slog"
	"testing"
)

type notificationLog struct {
	got []Notification
}

func (l *notificationLog) Notify(n Notification) { l.got = append(l.got, n) }

func TestNotificationsDedupe(t *testing.T) {
	var sink notificationLog
	ns := newNotifications(&sink, Logger)

	a := Notification{Severity: SeverityError, Message: "bad marker", Details: "ns:1"}
	b := Notification{Severity: SeverityError, Message: "bad marker", Details: "ns:2"}

	if !ns.report(a) {
		t.Error("first report should be delivered")
	}
	if ns.report(a) {
		t.Error("duplicate report should be suppressed")
	}
	if !ns.report(b) {
		t.Error("different details should be delivered")
	}
	if len(sink.got) != 2 {
		t.Fatalf("delivered %d notifications, want 2", len(sink.got))
	}

	ns.reset()
	if !ns.report(a) {
		t.Error("report after reset should be delivered")
	}
}

func TestNotificationsKey(t *testing.T) {
	var sink notificationLog
	ns := newNotifications(&sink, Logger)

	ns.report(Notification{Message: "camera", Details: "first", Key: "camera-model"})
	ns.report(Notification{Message: "camera", Details: "second", Key: "camera-model"})
	if len(sink.got) != 1 {
		t.Fatalf("delivered %d notifications, want 1 for a shared key", len(sink.got))
	}
	if sink.got[0].Details != "first" {
		t.Errorf("Details = %q, want first", sink.got[0].Details)
	}
}

func TestNotificationsWithoutTarget(t *testing.T) {
	ns := newNotifications(nil, func() *slog.Logger { return Logger() })
	if !ns.report(Notification{Message: "x", Err: errors.New("boom")}) {
		t.Error("report without target should still count as delivered")
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityInfo, "info"},
		{SeverityWarn, "warn"},
		{SeverityError, "error"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
