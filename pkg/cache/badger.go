package cache

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"

	"github.com/matzehuels/specbox/pkg/errors"
)

// BadgerCache stores entries in an embedded badger database. Expiry uses
// badger's native entry TTL.
type BadgerCache struct {
	db *badger.DB
}

// NewBadgerCache opens a badger database in dir. An empty dir keeps the
// database in memory. Badger's own log lines go to logger at the matching
// level; a nil logger silences them.
func NewBadgerCache(dir string, logger *log.Logger) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open badger cache %s", dir)
	}
	return &BadgerCache{db: db}, nil
}

// Get retrieves a value.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "badger get")
	}
	return data, true, nil
}

// Set stores a value.
func (c *BadgerCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "badger set")
	}
	return nil
}

// Delete removes a value.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "badger delete")
	}
	return nil
}

// RunGC reclaims value log space every interval until ctx is done.
func (c *BadgerCache) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Collect until a pass finds nothing to rewrite.
			for c.db.RunValueLogGC(0.5) == nil {
			}
		}
	}
}

// Close closes the database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...any)   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...any)    { b.l.Debugf(format, args...) }
func (b badgerLogger) Debugf(format string, args ...any)   { b.l.Debugf(format, args...) }

var _ Cache = (*BadgerCache)(nil)
