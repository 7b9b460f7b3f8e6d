package rescache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrCompute_ComputesOnceWithinTTL(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	compute := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "answer", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrCompute(context.Background(), "ipl score", compute)
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if got != "answer" {
			t.Fatalf("got %q, want %q", got, "answer")
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("compute ran %d times, want 1", n)
	}
}

func TestGetOrCompute_RecomputesAfterExpiry(t *testing.T) {
	c := New(time.Minute)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	var calls int
	compute := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	if _, err := c.GetOrCompute(context.Background(), "q", compute); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(2 * time.Minute)
	if _, err := c.GetOrCompute(context.Background(), "q", compute); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("compute ran %d times, want 2", calls)
	}
}

func TestGetOrCompute_KeysAreCaseSensitive(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	compute := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}
	if _, err := c.GetOrCompute(context.Background(), "IPL score", compute); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute(context.Background(), "ipl score", compute); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("compute ran %d times, want 2 for distinct keys", n)
	}
}

func TestGetOrCompute_ConcurrentCallersShareOneFlight(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute(context.Background(), "same", compute)
			if err != nil {
				t.Errorf("GetOrCompute: %v", err)
			}
			results[i] = v
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("compute ran %d times, want 1", n)
	}
	for i, v := range results {
		if v != "shared" {
			t.Errorf("caller %d got %q, want %q", i, v, "shared")
		}
	}
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	boom := errors.New("upstream down")
	calls := 0
	if _, err := c.GetOrCompute(context.Background(), "q", func(context.Context) (string, error) {
		calls++
		return "", boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	got, err := c.GetOrCompute(context.Background(), "q", func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 2 {
		t.Fatalf("compute ran %d times, want 2", calls)
	}
}

func TestPurge_RemovesExpiredOnly(t *testing.T) {
	c := New(time.Minute)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	c.Put("old", "1")
	clock = clock.Add(30 * time.Second)
	c.Put("fresh", "2")
	clock = clock.Add(45 * time.Second)

	c.Purge()
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("fresh entry evicted")
	}
}
