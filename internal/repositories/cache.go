package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/observe"
)

const payloadSchema = `
	CREATE TABLE IF NOT EXISTS payloads (
		key TEXT PRIMARY KEY,
		upstream_url TEXT NOT NULL,
		payload BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);
`

// PayloadCache keeps the last raw upstream payload per feed in SQLite.
type PayloadCache struct {
	db    *sql.DB
	clock clockwork.Clock
	l     *observe.Logger
}

// CacheEntry is one stored payload.
type CacheEntry struct {
	Key       string
	URL       string
	Payload   []byte
	FetchedAt time.Time
}

// Policy decides when a stored payload may be served without fetching.
type Policy struct {
	// TTL is the maximum age of a hit. Zero disables the age check.
	TTL time.Duration
	// SameURL requires the stored upstream URL to match the request.
	SameURL bool
	// Accept, when set, must approve the stored payload.
	Accept func(payload []byte) bool
}

// Cached is a payload together with where it came from.
type Cached struct {
	Payload   []byte
	Status    models.CacheStatus
	FetchedAt time.Time
}

// OpenPayloadCache opens (or creates) the cache database at path.
// An empty path keeps the cache in memory.
func OpenPayloadCache(ctx context.Context, path string, clock clockwork.Clock, l *observe.Logger) (*PayloadCache, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening payload cache: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, payloadSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating payloads table: %w", err)
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PayloadCache{db: db, clock: clock, l: l}, nil
}

func (c *PayloadCache) Close() error {
	return c.db.Close()
}

// Get returns the entry stored under key, if any.
func (c *PayloadCache) Get(ctx context.Context, key string) (CacheEntry, bool, error) {
	var (
		e      CacheEntry
		millis int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT key, upstream_url, payload, fetched_at FROM payloads WHERE key = ?`, key,
	).Scan(&e.Key, &e.URL, &e.Payload, &millis)
	if errors.Is(err, sql.ErrNoRows) {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	e.FetchedAt = time.UnixMilli(millis).UTC()
	return e, true, nil
}

// Put overwrites the entry under key and stamps it with the current time.
func (c *PayloadCache) Put(ctx context.Context, key, url string, payload []byte) (time.Time, error) {
	now := c.clock.Now().UTC().Truncate(time.Millisecond)
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO payloads (key, upstream_url, payload, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			upstream_url = excluded.upstream_url,
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		key, url, payload, now.UnixMilli(),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return now, nil
}

// Fetch serves key from the cache when p allows it, otherwise calls fetch
// and stores the result. When fetch fails and any entry exists, the entry
// is served as STALE. A nil cache always fetches.
func (c *PayloadCache) Fetch(
	ctx context.Context,
	key, url string,
	p Policy,
	force bool,
	fetch func(ctx context.Context) ([]byte, error),
) (Cached, error) {
	if c == nil {
		payload, err := fetch(ctx)
		if err != nil {
			return Cached{}, err
		}
		return Cached{Payload: payload, Status: models.CacheMiss, FetchedAt: time.Now().UTC()}, nil
	}

	entry, found, err := c.Get(ctx, key)
	if err != nil {
		c.warn("cache read failed", err, key)
		found = false
	}

	if found && !force && c.fresh(entry, url, p) {
		return Cached{Payload: entry.Payload, Status: models.CacheHit, FetchedAt: entry.FetchedAt}, nil
	}

	payload, fetchErr := fetch(ctx)
	if fetchErr != nil {
		if found {
			c.warn("upstream failed, serving stale payload", fetchErr, key)
			return Cached{Payload: entry.Payload, Status: models.CacheStale, FetchedAt: entry.FetchedAt}, nil
		}
		return Cached{}, fetchErr
	}

	fetchedAt, err := c.Put(ctx, key, url, payload)
	if err != nil {
		c.warn("cache write failed", err, key)
		fetchedAt = c.clock.Now().UTC()
	}
	return Cached{Payload: payload, Status: models.CacheMiss, FetchedAt: fetchedAt}, nil
}

func (c *PayloadCache) fresh(e CacheEntry, url string, p Policy) bool {
	if p.SameURL && e.URL != url {
		return false
	}
	if p.TTL > 0 {
		age := c.clock.Since(e.FetchedAt)
		if age < 0 || age >= p.TTL {
			return false
		}
	}
	if p.Accept != nil && !p.Accept(e.Payload) {
		return false
	}
	return true
}

func (c *PayloadCache) warn(msg string, err error, key string) {
	if c.l == nil {
		return
	}
	c.l.Warning(msg, map[string]any{
		"key":   key,
		"error": err.Error(),
	})
}
