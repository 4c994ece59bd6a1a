// Package cache keeps compiled expressions around for reuse. A compiled
// *mregexp.Regexp is immutable, so one instance may serve every caller that
// asks for the same expression.
package cache

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"mregexp"
)

// Options configures a Cache.
type Options struct {
	// MaxPatterns bounds the number of compiled expressions kept.
	MaxPatterns int64
	// Config is used to compile every expression.
	Config mregexp.Config
}

// DefaultOptions returns options suitable for a few thousand expressions.
func DefaultOptions() Options {
	return Options{
		MaxPatterns: 4096,
		Config:      mregexp.DefaultConfig(),
	}
}

// Cache compiles expressions on first use and returns the shared result after.
// It is safe for concurrent use.
type Cache struct {
	data   *ristretto.Cache[string, *mregexp.Regexp]
	config mregexp.Config
}

// New creates a Cache.
func New(opts Options) (*Cache, error) {
	if opts.MaxPatterns <= 0 {
		return nil, errors.Errorf("cache: MaxPatterns must be positive, got %d", opts.MaxPatterns)
	}
	data, err := ristretto.NewCache[string, *mregexp.Regexp](&ristretto.Config[string, *mregexp.Regexp]{
		NumCounters: opts.MaxPatterns * 10,
		MaxCost:     opts.MaxPatterns,
		BufferItems: 64,
		Metrics:     true,
		Cost: func(*mregexp.Regexp) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "while creating pattern cache")
	}
	return &Cache{data: data, config: opts.Config}, nil
}

// Compile returns the compiled form of expr, compiling it on a miss.
// Failures are not cached. The result is shared with other callers and
// must not be released.
func (c *Cache) Compile(expr string) (*mregexp.Regexp, error) {
	if re, ok := c.data.Get(expr); ok {
		return re, nil
	}
	re, err := mregexp.CompileWithConfig(expr, c.config)
	if err != nil {
		return nil, errors.Wrapf(err, "while compiling %q", expr)
	}
	if !c.data.Set(expr, re, 1) {
		glog.V(2).Infof("cache: dropped compiled pattern %q", expr)
	}
	return re, nil
}

// Wait blocks until pending insertions are visible to Compile.
func (c *Cache) Wait() {
	c.data.Wait()
}

// HitRatio returns the fraction of lookups served from the cache.
func (c *Cache) HitRatio() float64 {
	return c.data.Metrics.Ratio()
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	c.data.Close()
}
