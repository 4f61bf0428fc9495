package health

import (
	"context"
	"errors"
	"testing"
)

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

func TestStatusWithoutDatabase(t *testing.T) {
	got := NewService(nil, "").Status(context.Background())
	want := Report{OK: true, Database: "memory", Cache: "memory"}
	if got != want {
		t.Fatalf("Status() = %+v, want %+v", got, want)
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	got := NewService(pinger{}, "redis").Status(context.Background())
	if !got.OK || got.Database != "up" || got.Cache != "redis" {
		t.Fatalf("unexpected report: %+v", got)
	}

	got = NewService(pinger{err: errors.New("refused")}, "redis").Status(context.Background())
	if got.OK || got.Database != "down" {
		t.Fatalf("unexpected report: %+v", got)
	}
}
