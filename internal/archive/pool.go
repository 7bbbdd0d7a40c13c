package archive

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mabhi256/jarscope/internal/classfile"
	"github.com/mabhi256/jarscope/internal/model"
)

const DefaultCacheSize = 4096

// Pool lazily parses class entries on lookup. Parsed classes are kept in a
// bounded cache that is dropped wholesale once it reaches its limit.
type Pool struct {
	entries map[string]*zip.File
	limit   int
	logger  *slog.Logger

	mu     sync.RWMutex
	cache  map[string]*model.ClassInfo
	failed map[string]error
	hits   int
	misses int
}

func newPool(entries map[string]*zip.File, limit int, logger *slog.Logger) *Pool {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &Pool{
		entries: entries,
		limit:   limit,
		logger:  logger,
		cache:   make(map[string]*model.ClassInfo),
		failed:  make(map[string]error),
	}
}

// GetCachedClass implements model.ClassPool. It returns nil for classes that
// are not in the archive or whose bytecode cannot be parsed.
func (p *Pool) GetCachedClass(name string) *model.ClassInfo {
	info, err := p.Load(name)
	if err != nil {
		return nil
	}
	return info
}

// Load returns the parsed class, parsing and caching it on first use
func (p *Pool) Load(name string) (*model.ClassInfo, error) {
	p.mu.RLock()
	info, ok := p.cache[name]
	failure := p.failed[name]
	p.mu.RUnlock()

	if ok {
		p.mu.Lock()
		p.hits++
		p.mu.Unlock()
		return info, nil
	}
	if failure != nil {
		return nil, failure
	}

	entry, exists := p.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}

	info, err := parseEntry(entry)
	if err != nil {
		p.logger.Debug("class could not be parsed", slog.String("class", name), slog.Any("error", err))
		p.mu.Lock()
		p.failed[name] = err
		p.mu.Unlock()
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.misses++
	if len(p.cache) >= p.limit {
		p.logger.Debug("class cache limit reached, clearing", slog.Int("limit", p.limit))
		p.cache = make(map[string]*model.ClassInfo)
	}
	p.cache[name] = info
	return info, nil
}

// Has reports whether the archive contains bytecode for name
func (p *Pool) Has(name string) bool {
	_, ok := p.entries[name]
	return ok
}

// Stats returns cache hits, misses and the number of cached classes
func (p *Pool) Stats() (hits, misses, cached int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hits, p.misses, len(p.cache)
}

// Clear drops every parsed class
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]*model.ClassInfo)
	p.failed = make(map[string]error)
}

func parseEntry(entry *zip.File) (*model.ClassInfo, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	info, err := classfile.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Name, err)
	}
	return info, nil
}
