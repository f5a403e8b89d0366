package linking

import (
	"context"
	stderrors "errors"
	"io/fs"
	"strings"
	"sync"

	"github.com/louisbranch/dossier/internal/platform/errors"
	"github.com/louisbranch/dossier/internal/platform/logging"
	"github.com/louisbranch/dossier/internal/platform/otel"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Record is a shareable loaded character, identified by its file path.
type Record interface {
	FilePath() string
}

// Referrer holds a reference to a record. OwnerPath is the file path of the
// record the referrer belongs to; referrers owned by the record they point
// at do not keep it alive.
type Referrer interface {
	OwnerPath() string
}

// Loader creates records for a registry.
type Loader[R Record] interface {
	// Allocate returns an empty record for path. It must not block.
	Allocate(path string) R
	// Populate reads the record's file. It may link further records through
	// the same registry.
	Populate(ctx context.Context, record R) error
	// Unload releases a record evicted from the registry.
	Unload(ctx context.Context, record R) error
}

// Options configures a Registry.
type Options struct {
	// BaseDir anchors relative file references. Empty means the working
	// directory.
	BaseDir string
	// Notifier receives not-found and unload notices. Nil drops them.
	Notifier Notifier
	Logger   *zap.Logger
}

type entry[R Record] struct {
	record    R
	referrers map[Referrer]struct{}
	pinned    bool

	// ready is closed once Populate returns; err holds its result.
	ready chan struct{}
	err   error
	owner *loadChain[R]
}

func (e *entry[R]) loaded() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// loadChain identifies one call chain of nested Populate calls. A chain
// waits on at most one loading entry at a time.
type loadChain[R Record] struct {
	waitingOn *entry[R]
}

type chainKey struct{ registry any }

// errEvicted reports a record removed while a caller waited for it.
var errEvicted = stderrors.New("record left the registry while loading")

// Registry tracks open records by resolved path. It is safe for concurrent
// use. Every entry and referrer mutation happens under one mutex, and loading
// and unloading run outside it. Callers on other call chains wait for a
// loading record; a chain that reaches a record it is itself loading gets
// the partial record back so link cycles terminate.
type Registry[R interface {
	comparable
	Record
}] struct {
	loader   Loader[R]
	baseDir  string
	notifier Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry[R]
}

// New returns an empty registry backed by loader.
func New[R interface {
	comparable
	Record
}](loader Loader[R], opts Options) *Registry[R] {
	return &Registry[R]{
		loader:   loader,
		baseDir:  strings.TrimSpace(opts.BaseDir),
		notifier: opts.Notifier,
		logger:   logging.OrNop(opts.Logger),
		entries:  map[string]*entry[R]{},
	}
}

// BaseDir returns the directory relative references are resolved against.
func (r *Registry[R]) BaseDir() string {
	return r.baseDir
}

// Open returns the record at path and pins it until Close. A record already
// held by referrers is reused.
func (r *Registry[R]) Open(ctx context.Context, path string) (R, error) {
	var zero R
	path = absolute(path)
	r.mu.Lock()
	if e, ok := r.entries[path]; ok {
		if err := r.awaitLocked(ctx, path, e); err != nil {
			r.mu.Unlock()
			return zero, err
		}
		e.pinned = true
		r.mu.Unlock()
		return e.record, nil
	}
	ctx, chain := r.chain(ctx)
	e := r.insertLocked(path, chain)
	e.pinned = true
	r.mu.Unlock()

	if err := r.populate(ctx, path, e); err != nil {
		return zero, err
	}
	return e.record, nil
}

// Close unpins record and unloads it when no outside referrer remains.
func (r *Registry[R]) Close(ctx context.Context, record R) error {
	path := record.FilePath()
	r.mu.Lock()
	e, ok := r.entries[path]
	if !ok || e.record != record {
		r.mu.Unlock()
		return nil
	}
	e.pinned = false
	evict := r.orphanedLocked(path, e)
	if evict {
		delete(r.entries, path)
		metrics.OpenRecords.Set(float64(len(r.entries)))
	}
	r.mu.Unlock()
	if !evict {
		return nil
	}
	metrics.LinkEvictionsTotal.Inc()
	return r.loader.Unload(ctx, record)
}

// Relink moves referrer from old (the zero value when unlinked) to the record
// named by filePath or relativePath. It returns the new record and whether
// one was found. When the record identity changes and old has no outside
// referrer left and is not pinned, old is removed and unloaded.
//
// Missing files are reported to the notifier only when notify is set.
func (r *Registry[R]) Relink(ctx context.Context, referrer Referrer, old R, filePath, relativePath string, notify bool) (R, bool) {
	ctx, span := otel.StartSpan(ctx, "linking.relink",
		attribute.String("file", filePath),
		attribute.String("relative", relativePath))
	defer span.End()

	var zero R
	if old != zero {
		r.deregister(old, referrer)
	}
	record, ok := r.acquire(ctx, referrer, filePath, relativePath, notify)
	if old != zero && record != old {
		r.evictIfOrphaned(ctx, old)
	}
	return record, ok
}

// Release drops referrer from record, unloading the record when it was the
// last outside referrer.
func (r *Registry[R]) Release(ctx context.Context, referrer Referrer, record R) {
	var zero R
	if record == zero {
		return
	}
	r.deregister(record, referrer)
	r.evictIfOrphaned(ctx, record)
}

// Lookup returns the open record at path.
func (r *Registry[R]) Lookup(path string) (R, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[absolute(path)]
	if !ok {
		var zero R
		return zero, false
	}
	return e.record, true
}

// Referrers returns how many referrers hold the record at path.
func (r *Registry[R]) Referrers(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[absolute(path)]; ok {
		return len(e.referrers)
	}
	return 0
}

// Len returns the number of open records.
func (r *Registry[R]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry[R]) acquire(ctx context.Context, referrer Referrer, filePath, relativePath string, notify bool) (R, bool) {
	var zero R
	path, found := ResolvePath(r.baseDir, filePath, relativePath)
	if !found {
		if strings.TrimSpace(filePath) == "" && strings.TrimSpace(relativePath) == "" {
			metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeUnlinked).Inc()
			return zero, false
		}
		metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		notFound := errors.WithMetadata(errors.CodeLinkFileNotFound, "linked file not found",
			map[string]string{"Path": filePath})
		if notify {
			r.notify(ctx, notFound)
		} else {
			r.logger.Debug(notFound.Message, zap.String("file", filePath), zap.String("relative", relativePath))
		}
		return zero, false
	}
	if !Eligible(path) {
		metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeUnlinked).Inc()
		return zero, false
	}

	r.mu.Lock()
	if e, ok := r.entries[path]; ok {
		if err := r.awaitLocked(ctx, path, e); err != nil {
			r.mu.Unlock()
			metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeLoadError).Inc()
			r.logger.Debug("shared record unavailable", zap.String("path", path), zap.Error(err))
			return zero, false
		}
		e.referrers[referrer] = struct{}{}
		r.mu.Unlock()
		metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeLinked).Inc()
		return e.record, true
	}
	ctx, chain := r.chain(ctx)
	e := r.insertLocked(path, chain)
	e.referrers[referrer] = struct{}{}
	r.mu.Unlock()

	if err := r.populate(ctx, path, e); err != nil {
		metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeLoadError).Inc()
		loadErr := errors.WrapWithMetadata(errors.CodeLinkLoadFailed, "load linked record",
			map[string]string{"Path": path}, err)
		if notify {
			r.notify(ctx, loadErr)
		} else {
			r.logger.Warn(loadErr.Message, zap.String("path", path), zap.Error(err))
		}
		return zero, false
	}
	metrics.LinkResolutionsTotal.WithLabelValues(metrics.OutcomeLinked).Inc()
	return e.record, true
}

func (r *Registry[R]) deregister(record R, referrer Referrer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[record.FilePath()]; ok && e.record == record {
		delete(e.referrers, referrer)
	}
}

func (r *Registry[R]) evictIfOrphaned(ctx context.Context, record R) {
	path := record.FilePath()
	r.mu.Lock()
	e, ok := r.entries[path]
	if !ok || e.record != record || e.pinned || !e.loaded() || !r.orphanedLocked(path, e) {
		r.mu.Unlock()
		return
	}
	delete(r.entries, path)
	metrics.OpenRecords.Set(float64(len(r.entries)))
	r.mu.Unlock()

	metrics.LinkEvictionsTotal.Inc()
	r.logger.Debug("unloading unreferenced record", zap.String("path", path))
	if err := r.loader.Unload(ctx, record); err != nil {
		code := errors.CodeLinkUnloadFailed
		if stderrors.Is(err, fs.ErrPermission) {
			code = errors.CodeFilesystemPermission
		}
		r.notify(ctx, errors.WrapWithMetadata(code, "unload linked record",
			map[string]string{"Path": path}, err))
	}
}

// orphanedLocked reports whether e has no referrer outside its own record.
func (r *Registry[R]) orphanedLocked(path string, e *entry[R]) bool {
	for referrer := range e.referrers {
		if referrer.OwnerPath() != path {
			return false
		}
	}
	return true
}

// chain returns the load chain carried by ctx, starting a new one when ctx
// is not inside a Populate of this registry.
func (r *Registry[R]) chain(ctx context.Context) (context.Context, *loadChain[R]) {
	if chain, ok := ctx.Value(chainKey{r}).(*loadChain[R]); ok {
		return ctx, chain
	}
	chain := &loadChain[R]{}
	return context.WithValue(ctx, chainKey{r}, chain), chain
}

func (r *Registry[R]) insertLocked(path string, chain *loadChain[R]) *entry[R] {
	e := &entry[R]{
		record:    r.loader.Allocate(path),
		referrers: map[Referrer]struct{}{},
		ready:     make(chan struct{}),
		owner:     chain,
	}
	r.entries[path] = e
	metrics.OpenRecords.Set(float64(len(r.entries)))
	return e
}

// populate loads e and publishes the result to waiting callers. A failed
// entry leaves the registry before ready is closed.
func (r *Registry[R]) populate(ctx context.Context, path string, e *entry[R]) error {
	ctx, span := otel.StartSpan(ctx, "linking.populate", attribute.String("path", path))
	err := r.loader.Populate(ctx, e.record)
	span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	e.err = err
	e.owner = nil
	if err != nil && r.entries[path] == e {
		delete(r.entries, path)
		metrics.OpenRecords.Set(float64(len(r.entries)))
	}
	close(e.ready)
	return err
}

// awaitLocked blocks until e has loaded. It returns at once when waiting
// would close a cycle of load chains, handing back the partial record. The
// mutex is released while waiting.
func (r *Registry[R]) awaitLocked(ctx context.Context, path string, e *entry[R]) error {
	if !e.loaded() {
		chain, _ := ctx.Value(chainKey{r}).(*loadChain[R])
		if r.closesCycleLocked(chain, e) {
			return nil
		}
		if chain != nil {
			chain.waitingOn = e
		}
		r.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
		}
		r.mu.Lock()
		if chain != nil {
			chain.waitingOn = nil
		}
		if !e.loaded() {
			return ctx.Err()
		}
	}
	if e.err != nil {
		return e.err
	}
	if r.entries[path] != e {
		return errEvicted
	}
	return nil
}

// closesCycleLocked reports whether chain waiting on e would wait on itself,
// directly or through other chains waiting on records chain is loading.
func (r *Registry[R]) closesCycleLocked(chain *loadChain[R], e *entry[R]) bool {
	if chain == nil {
		return false
	}
	for owner := e.owner; owner != nil; {
		if owner == chain {
			return true
		}
		next := owner.waitingOn
		if next == nil || next.loaded() {
			return false
		}
		owner = next.owner
	}
	return false
}

func (r *Registry[R]) notify(ctx context.Context, err *errors.Error) {
	if r.notifier == nil {
		r.logger.Warn(err.Error(), zap.String("code", string(err.Code)))
		return
	}
	r.notifier.Notify(ctx, err)
}
