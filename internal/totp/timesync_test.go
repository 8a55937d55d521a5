package totp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNetworkClockOffset(t *testing.T) {
	skew := -90 * time.Second
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Date", time.Now().Add(skew).UTC().Format(http.TimeFormat))
	}))
	defer srv.Close()

	c := NewNetworkClock(srv.URL, time.Hour, nil)
	c.Resync()

	offset := c.Offset()
	// The Date header has one-second resolution; allow slack for that
	// plus request latency.
	if offset > skew+3*time.Second || offset < skew-3*time.Second {
		t.Fatalf("offset = %v; want about %v", offset, skew)
	}

	diff := time.Until(c.Now()) - offset
	if diff > time.Second || diff < -time.Second {
		t.Fatalf("Now() does not apply the offset, diff = %v", diff)
	}
}

func TestNetworkClockFallsBackToLocalTime(t *testing.T) {
	c := NewNetworkClock("http://127.0.0.1:0", time.Hour, nil)
	c.Resync()
	if c.Offset() != 0 {
		t.Fatalf("offset after failed sync = %v; want 0", c.Offset())
	}
	if d := time.Until(c.Now()); d > time.Second || d < -time.Second {
		t.Fatalf("Now() should track local time on failure, diff = %v", d)
	}
}

func TestNetworkClockSyncsAtMostOncePerInterval(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
	}))
	defer srv.Close()

	c := NewNetworkClock(srv.URL, time.Hour, nil)
	for i := 0; i < 5; i++ {
		c.Now()
	}
	if hits != 1 {
		t.Fatalf("time source hit %d times; want 1", hits)
	}
}
