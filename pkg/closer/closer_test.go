package closer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Func {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	c := NewCloser(0)
	c.Add("db", record("db"))
	c.Add("redis", record("redis"))
	c.Add("http", record("http"))

	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Join(order, ","); got != "http,redis,db" {
		t.Fatalf("want http,redis,db, got %s", got)
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	boom := errors.New("boom")

	c := NewCloser(0)
	c.Add("ok", func(context.Context) error { return nil })
	c.Add("bad", func(context.Context) error { return boom })

	err := c.Close(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "close bad") {
		t.Fatalf("want resource name in error, got %v", err)
	}

	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("second Close must be no-op, got %v", err)
	}
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	forced := make(chan struct{}, 1)

	c := NewCloser(time.Second)
	c.Add("first", func(context.Context) error {
		forced <- struct{}{}
		return nil
	})
	c.Add("slow", func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}

	select {
	case <-forced:
	default:
		t.Fatal("remaining func was not force-closed")
	}
}
