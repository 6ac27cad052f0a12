package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"business-directory-api/models"
	"business-directory-api/testutil"
)

func newLimiter(t *testing.T, now *time.Time) *Limiter {
	l := New(testutil.NewDB(t), 3, time.Hour)
	l.Now = func() time.Time { return *now }
	return l
}

func mustAllow(t *testing.T, l *Limiter, scope, identity string) Decision {
	t.Helper()
	d, err := l.Allow(context.Background(), scope, identity)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFourthRequestInWindowIsRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)
	l := newLimiter(t, &now)

	for i := 1; i <= 3; i++ {
		if d := mustAllow(t, l, "login", "ip:10.0.0.1"); !d.Allowed || d.Hits != i {
			t.Fatalf("request %d: %+v", i, d)
		}
	}
	d := mustAllow(t, l, "login", "ip:10.0.0.1")
	if d.Allowed {
		t.Fatalf("fourth request allowed: %+v", d)
	}
	if d.RetryAfter != time.Hour {
		t.Errorf("RetryAfter = %v, want 1h", d.RetryAfter)
	}
}

func TestScopesAndIdentitiesAreSeparate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l := newLimiter(t, &now)

	for i := 0; i < 3; i++ {
		mustAllow(t, l, "login", "ip:10.0.0.1")
	}
	for _, tc := range []struct{ scope, identity string }{
		{"signup", "ip:10.0.0.1"},
		{"login", "ip:10.0.0.2"},
	} {
		if d := mustAllow(t, l, tc.scope, tc.identity); !d.Allowed || d.Hits != 1 {
			t.Errorf("%s %s: %+v", tc.scope, tc.identity, d)
		}
	}
}

func TestWindowSlides(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 50, 0, 0, time.UTC)
	l := newLimiter(t, &now)

	for _, at := range []time.Duration{0, 5 * time.Minute, 9 * time.Minute} {
		now = time.Date(2026, 3, 1, 10, 50, 0, 0, time.UTC).Add(at)
		mustAllow(t, l, "signup", "ip:10.0.0.1")
	}

	// Crossing the hour does not reset the count.
	now = time.Date(2026, 3, 1, 11, 1, 0, 0, time.UTC)
	d := mustAllow(t, l, "signup", "ip:10.0.0.1")
	if d.Allowed {
		t.Fatalf("request at 11:01 allowed: %+v", d)
	}
	if d.RetryAfter != 49*time.Minute {
		t.Errorf("RetryAfter = %v, want 49m", d.RetryAfter)
	}

	// Rejected requests are not counted, so the 10:50 hit still frees a slot at 11:50.
	now = time.Date(2026, 3, 1, 11, 50, 0, 0, time.UTC)
	if d := mustAllow(t, l, "signup", "ip:10.0.0.1"); !d.Allowed || d.Hits != 3 {
		t.Fatalf("request at 11:50: %+v", d)
	}

	var buckets int64
	l.DB.Model(&models.ThrottleBucket{}).Count(&buckets)
	if buckets != 3 {
		t.Errorf("expired or empty buckets kept: %d buckets", buckets)
	}
}

func TestConcurrentRequestsCountExactly(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l := newLimiter(t, &now)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(context.Background(), "login", "ip:10.0.0.9")
			if err != nil {
				t.Error(err)
				return
			}
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed != 3 {
		t.Fatalf("allowed = %d, want 3", allowed)
	}
}
