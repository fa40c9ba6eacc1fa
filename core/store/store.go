// ABOUTME: Feed state store owns the per-feed load state of every registered feed
// ABOUTME: Coordinates staggered initial loads, capped manual retries and periodic refresh

package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"portfolio-feeds-api/core/domain"
	coreerrors "portfolio-feeds-api/core/errors"
	"portfolio-feeds-api/core/interfaces"
)

// fallbackErrorMessage is shown when a fetch failed without a classified message
const fallbackErrorMessage = "Unable to load posts from any RSS service"

// Options configures a Store
type Options struct {
	ItemsPerFeed     int
	LoadStagger      time.Duration
	RetryDelayStep   time.Duration
	MaxManualRetries int
	RefreshInterval  time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default store options
func DefaultOptions() Options {
	return Options{
		ItemsPerFeed:     5,
		LoadStagger:      500 * time.Millisecond,
		RetryDelayStep:   2 * time.Second,
		MaxManualRetries: 3,
		RefreshInterval:  10 * time.Minute,
	}
}

// Feed is a point-in-time view of one registered feed
type Feed struct {
	Index      int
	Descriptor domain.FeedDescriptor
	State      domain.FeedState
	Retries    int
}

// Snapshot is a point-in-time view of the whole store
type Snapshot struct {
	Feeds []Feed

	// ConfigErr is set when the registry could not be loaded
	ConfigErr error
}

// Store owns the FeedState mapping. All state writes are whole-record
// replacements made under mu; readers receive deep copies.
type Store struct {
	fetcher interfaces.FeedFetcher
	logger  interfaces.Logger
	opts    Options

	mu          sync.RWMutex
	feeds       []domain.FeedDescriptor
	states      map[int]domain.FeedState
	retries     map[int]int
	generations map[int]uint64
	configErr   error
	running     bool
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty store; call Load or Reload to register feeds
func New(fetcher interfaces.FeedFetcher, logger interfaces.Logger, opts Options) *Store {
	defaults := DefaultOptions()
	if opts.ItemsPerFeed <= 0 {
		opts.ItemsPerFeed = defaults.ItemsPerFeed
	}
	if opts.LoadStagger < 0 {
		opts.LoadStagger = 0
	}
	if opts.RetryDelayStep < 0 {
		opts.RetryDelayStep = 0
	}
	if opts.MaxManualRetries < 0 {
		opts.MaxManualRetries = 0
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaults.RefreshInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Store{
		fetcher:     fetcher,
		logger:      logger,
		opts:        opts,
		states:      make(map[int]domain.FeedState),
		retries:     make(map[int]int),
		generations: make(map[int]uint64),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// ItemsPerFeed returns the configured per-feed item bound
func (s *Store) ItemsPerFeed() int {
	return s.opts.ItemsPerFeed
}

// MaxManualRetries returns the per-feed manual retry cap
func (s *Store) MaxManualRetries() int {
	return s.opts.MaxManualRetries
}

// Reload reads the registry and restarts the initial load.
// On failure the previous feeds are dropped and the error is kept for Snapshot.
func (s *Store) Reload(ctx context.Context, loader interfaces.RegistryLoader) error {
	feeds, err := loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			return coreerrors.ErrStoreClosed
		}
		s.resetLocked(nil)
		s.configErr = err

		s.logError("Failed to load feed registry", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	return s.Load(feeds)
}

// Load registers feeds, sets every feed to Loading and dispatches one fetch
// per feed, staggered by index * LoadStagger. Initial loads may be served from cache.
func (s *Store) Load(feeds []domain.FeedDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return coreerrors.ErrStoreClosed
	}

	s.resetLocked(feeds)
	for i := range s.feeds {
		s.dispatchLocked(i, time.Duration(i)*s.opts.LoadStagger, false)
	}

	s.logInfo("Loading feeds", map[string]interface{}{
		"feeds": len(s.feeds),
	})
	return nil
}

// resetLocked replaces the registry; generations keep counting so that
// completions from the previous registry are discarded
func (s *Store) resetLocked(feeds []domain.FeedDescriptor) {
	for i := range s.feeds {
		s.generations[i]++
	}

	s.feeds = append([]domain.FeedDescriptor(nil), feeds...)
	s.states = make(map[int]domain.FeedState, len(feeds))
	s.retries = make(map[int]int, len(feeds))
	s.configErr = nil

	for i := range s.feeds {
		s.states[i] = domain.LoadingState()
	}
}

// Retry re-fetches one feed. The feed enters Loading immediately and the fetch
// starts after retries * RetryDelayStep. Once MaxManualRetries retries were used
// without a successful fetch, it returns ErrRetryLimitReached and changes nothing.
func (s *Store) Retry(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return coreerrors.ErrStoreClosed
	}
	if index < 0 || index >= len(s.feeds) {
		return &coreerrors.NotFoundError{Resource: "feed", ID: strconv.Itoa(index)}
	}

	used := s.retries[index]
	if used >= s.opts.MaxManualRetries {
		return coreerrors.ErrRetryLimitReached
	}

	s.retries[index] = used + 1
	s.states[index] = domain.LoadingState()
	s.dispatchLocked(index, time.Duration(used)*s.opts.RetryDelayStep, true)

	s.logInfo("Retrying feed", map[string]interface{}{
		"feed":    s.feeds[index].Title,
		"attempt": used + 1,
	})
	return nil
}

// Refresh re-fetches every feed that is Ready. Loading and Error feeds are skipped.
// It returns the number of feeds dispatched.
func (s *Store) Refresh() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	var dispatched int
	for i := range s.feeds {
		state := s.states[i]
		if state.Phase != domain.PhaseReady || state.ErrorMessage != "" {
			continue
		}
		s.states[i] = domain.LoadingState()
		s.dispatchLocked(i, 0, true)
		dispatched++
	}

	s.logDebug("Refreshing feeds", map[string]interface{}{
		"dispatched": dispatched,
	})
	return dispatched
}

// Start runs the periodic refresh loop until Stop is called
func (s *Store) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return coreerrors.ErrStoreClosed
	}
	if s.running {
		return nil
	}
	s.running = true

	s.wg.Add(1)
	go s.refreshLoop()
	return nil
}

func (s *Store) refreshLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Refresh()
		case <-s.ctx.Done():
			return
		}
	}
}

// Stop cancels pending and in-flight fetches and waits for them to return.
// Completions arriving after Stop are ignored.
func (s *Store) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}

// dispatchLocked starts a fetch for index after delay. It bumps the feed's
// generation so any earlier in-flight fetch for the same feed becomes stale.
func (s *Store) dispatchLocked(index int, delay time.Duration, bypassCache bool) {
	s.generations[index]++
	generation := s.generations[index]
	feed := s.feeds[index]
	fetchOpts := interfaces.FetchOptions{Count: s.opts.ItemsPerFeed, BypassCache: bypassCache}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-s.ctx.Done():
				timer.Stop()
				return
			}
		}

		if s.ctx.Err() != nil {
			return
		}

		items, err := s.fetcher.FetchFeed(s.ctx, feed, fetchOpts)
		s.complete(index, generation, items, err)
	}()
}

// complete records a fetch result unless the store closed or a newer fetch was dispatched
func (s *Store) complete(index int, generation uint64, items []domain.FeedItem, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.generations[index] != generation || index >= len(s.feeds) {
		s.logDebug("Discarding stale feed result", map[string]interface{}{
			"index": index,
		})
		return
	}

	if err != nil {
		message := fallbackErrorMessage
		var exhausted *coreerrors.AllSourcesExhaustedError
		if errors.As(err, &exhausted) && exhausted.Message != "" {
			message = exhausted.Message
		}
		s.states[index] = domain.ErrorState(message)

		s.logWarn("Feed failed to load", map[string]interface{}{
			"feed":  s.feeds[index].Title,
			"error": message,
		})
		return
	}

	if len(items) > s.opts.ItemsPerFeed {
		items = items[:s.opts.ItemsPerFeed]
	}
	s.states[index] = domain.ReadyState(items, s.opts.Now())
	s.retries[index] = 0

	s.logDebug("Feed loaded", map[string]interface{}{
		"feed":  s.feeds[index].Title,
		"items": len(items),
	})
}

// Snapshot returns a copy of every feed and its state in registry order
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feeds := make([]Feed, 0, len(s.feeds))
	for i := range s.feeds {
		feeds = append(feeds, s.viewLocked(i))
	}

	return Snapshot{Feeds: feeds, ConfigErr: s.configErr}
}

// Get returns a copy of one feed
func (s *Store) Get(index int) (Feed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.feeds) {
		return Feed{}, &coreerrors.NotFoundError{Resource: "feed", ID: strconv.Itoa(index)}
	}

	return s.viewLocked(index), nil
}

func (s *Store) viewLocked(index int) Feed {
	return Feed{
		Index:      index,
		Descriptor: s.feeds[index],
		State:      s.states[index].Clone(),
		Retries:    s.retries[index],
	}
}

func (s *Store) logDebug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

func (s *Store) logInfo(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}

func (s *Store) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}

func (s *Store) logError(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Error(msg, fields)
	}
}
