package totp

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeSource is the URL queried for a trusted Date header.
const DefaultTimeSource = "https://www.google.com"

// DefaultSyncInterval is how often the offset is refreshed at most.
const DefaultSyncInterval = time.Hour

const fetchTimeout = 5 * time.Second

// NetworkClock corrects the local clock with an offset derived from an
// external time source. The correction is best effort: when the fetch
// fails the offset stays zero and local time is used unmodified.
type NetworkClock struct {
	mu        sync.Mutex
	url       string
	interval  time.Duration
	client    *http.Client
	offset    time.Duration
	lastSync  time.Time
	synced    bool
	log       *zap.Logger
}

// NewNetworkClock constructs a clock that syncs lazily on first use and
// at most once per interval afterwards.
func NewNetworkClock(url string, interval time.Duration, log *zap.Logger) *NetworkClock {
	if url == "" {
		url = DefaultTimeSource
	}
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NetworkClock{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: fetchTimeout},
		log:      log,
	}
}

// Now returns local time plus the current offset, refreshing the offset
// when the last sync is older than the interval.
func (c *NetworkClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.synced || time.Since(c.lastSync) > c.interval {
		c.syncLocked()
	}
	return time.Now().Add(c.offset)
}

// Resync forces a refresh and returns the new offset.
func (c *NetworkClock) Resync() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	return c.offset
}

// Offset returns the currently applied correction.
func (c *NetworkClock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

func (c *NetworkClock) syncLocked() {
	c.synced = true
	c.lastSync = time.Now()

	serverTime, err := c.fetchServerTime()
	if err != nil {
		c.log.Warn("time sync failed, using local clock", zap.Error(err))
		c.offset = 0
		return
	}
	c.offset = serverTime.Sub(time.Now())
	c.log.Info("time offset calculated", zap.Duration("offset", c.offset))
}

func (c *NetworkClock) fetchServerTime() (time.Time, error) {
	resp, err := c.client.Head(c.url)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()
	return http.ParseTime(resp.Header.Get("Date"))
}
