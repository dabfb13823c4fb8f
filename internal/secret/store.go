package secret

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/singleflight"
)

// Store resolves secrets by location and caches them for the lifetime of the
// process. Resolution of a location happens at most once: concurrent first
// callers share a single load-or-generate, and later callers hit the cache.
type Store struct {
	storage Storage
	rand    RandSource
	clock   quartz.Clock
	logger  *log.Logger

	cache   sync.Map // Location -> Secret
	flights singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for generation and corruption messages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithRandSource replaces crypto/rand as the source for new secrets.
func WithRandSource(src RandSource) Option {
	return func(s *Store) { s.rand = src }
}

// WithClock sets the clock used to stamp generated documents.
func WithClock(clock quartz.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// NewStore creates a Store backed by storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		rand:    cryptoSource{},
		clock:   quartz.NewReal(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cached returns the secret for loc if it has already been resolved.
func (s *Store) Cached(loc Location) (Secret, bool) {
	v, ok := s.cache.Load(loc)
	if !ok {
		return 0, false
	}
	return v.(Secret), true
}

// Resolve returns the secret for loc, loading it from storage or generating
// and persisting a new one on first use.
//
// Documents without a usable secret are replaced; a valid secret is kept even
// when the rest of its document is damaged. The only error is a wrapped
// ErrPersist, returned when a new secret could not be stored; in that case
// nothing is cached and no volatile secret is handed out.
func (s *Store) Resolve(loc Location) (Secret, error) {
	if secret, ok := s.Cached(loc); ok {
		return secret, nil
	}

	v, err, _ := s.flights.Do(string(loc), func() (any, error) {
		// A flight that finished between our cache miss and Do has
		// already stored the value.
		if secret, ok := s.Cached(loc); ok {
			return secret, nil
		}
		secret, err := s.loadOrGenerate(loc)
		if err != nil {
			return Secret(0), err
		}
		s.cache.Store(loc, secret)
		return secret, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(Secret), nil
}

func (s *Store) loadOrGenerate(loc Location) (Secret, error) {
	doc, err := s.storage.Load(loc)
	switch {
	case err == nil && doc.Secret.Valid():
		return doc.Secret, nil
	case errors.Is(err, ErrMetadata) && doc.Secret.Valid():
		s.logger.Warn("Ignoring invalid secret document metadata", "location", loc, "error", err)
		return doc.Secret, nil
	case err == nil:
		s.logger.Warn("Secret document holds no usable secret; regenerating", "location", loc)
	case errors.Is(err, ErrNotExist):
	default:
		s.logger.Warn("Failed to read secret document; regenerating", "location", loc, "error", err)
	}

	secret := Generate(s.rand)
	doc = Document{
		Secret:      secret,
		Version:     DocumentVersion,
		GeneratedAt: s.clock.Now(),
	}
	if err := s.storage.Save(loc, doc); err != nil {
		return 0, fmt.Errorf("%w to %s: %w", ErrPersist, loc, err)
	}

	s.logger.Info("Generated new secret", "location", loc, "fingerprint", Fingerprint(secret))
	return secret, nil
}
