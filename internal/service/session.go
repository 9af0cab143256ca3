package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/types"
)

// FeedState tracks the feed-loading state machine:
// Idle -> Loading -> {Ready, Error}. Error is non-terminal; a retry
// re-enters Loading.
type FeedState string

const (
	FeedIdle    FeedState = "idle"
	FeedLoading FeedState = "loading"
	FeedReady   FeedState = "ready"
	FeedError   FeedState = "error"
)

// FilterKind narrows a feed client-side. Filters are mutually exclusive;
// selecting the active one clears it.
type FilterKind string

const (
	FilterNone        FilterKind = ""
	FilterQuick       FilterKind = "quick"
	FilterHighProtein FilterKind = "high-protein"
	FilterWeightLoss  FilterKind = "weight-loss"
)

// ParseFilter maps a query-string value to a FilterKind.
func ParseFilter(s string) (FilterKind, bool) {
	switch FilterKind(s) {
	case FilterNone, FilterQuick, FilterHighProtein, FilterWeightLoss:
		return FilterKind(s), true
	}
	return FilterNone, false
}

// FilterFeed returns the subsequence of feed matching the filter. It never
// issues generation calls; it only narrows what was already fetched.
func FilterFeed(feed []models.Recipe, kind FilterKind) []models.Recipe {
	if kind == FilterNone {
		return feed
	}
	out := make([]models.Recipe, 0, len(feed))
	for _, r := range feed {
		switch kind {
		case FilterQuick:
			if r.PrepTime < 15 {
				out = append(out, r)
			}
		case FilterHighProtein:
			if r.Protein > 20 {
				out = append(out, r)
			}
		case FilterWeightLoss:
			if hasTag(r, "weight-loss") || r.Calories < 400 {
				out = append(out, r)
			}
		}
	}
	return out
}

// SearchFeed returns feed entries whose title, any tag or any ingredient
// contains the query, case-insensitively. A blank query returns the feed
// unchanged, same elements, same order.
func SearchFeed(feed []models.Recipe, query string) []models.Recipe {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return feed
	}

	out := make([]models.Recipe, 0, len(feed))
	for _, r := range feed {
		if matchesQuery(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(r models.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}

func hasTag(r models.Recipe, tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RecommendationSession holds one user's home feed and its client-side
// narrowing state. The last successful feed survives a failed regeneration;
// a build token keeps a stale in-flight rebuild from overwriting a newer one.
type RecommendationSession struct {
	mu           sync.Mutex
	gen          *Generator
	delay        time.Duration
	state        FeedState
	feed         []models.Recipe
	activeFilter FilterKind
	query        string
	lastErr      error
	buildSeq     uint64
}

// NewRecommendationSession creates a session around the given generator.
// delay is the courtesy pause between consecutive real-backend calls.
func NewRecommendationSession(gen *Generator, delay time.Duration) *RecommendationSession {
	return &RecommendationSession{
		gen:   gen,
		delay: delay,
		state: FeedIdle,
	}
}

// BuildFeed generates count candidate recipes from the same profile-derived
// request and commits them as the new feed. Recipes appear in call order.
// Against a real backend the calls run sequentially with the configured
// delay between them; in fallback-only mode they fan out concurrently since
// there is no external rate limit to respect.
func (s *RecommendationSession) BuildFeed(ctx context.Context, profile types.ProfileContext, count int) ([]models.Recipe, error) {
	s.mu.Lock()
	s.buildSeq++
	token := s.buildSeq
	s.state = FeedLoading
	s.mu.Unlock()

	feed, err := s.generateFeed(ctx, profile, count)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.buildSeq {
		// A newer rebuild superseded this one; discard the result.
		return append([]models.Recipe(nil), s.feed...), nil
	}

	if err != nil {
		// Stale-but-valid data is preserved; only the state flips to Error.
		s.state = FeedError
		s.lastErr = err
		return nil, err
	}

	s.feed = feed
	s.state = FeedReady
	s.lastErr = nil
	s.activeFilter = FilterNone
	s.query = ""
	return append([]models.Recipe(nil), feed...), nil
}

func (s *RecommendationSession) generateFeed(ctx context.Context, profile types.ProfileContext, count int) ([]models.Recipe, error) {
	req := profile.Request("", 0)

	if !s.gen.BackendLive() {
		results := make([]*models.Recipe, count)
		grp, gctx := errgroup.WithContext(ctx)
		for i := 0; i < count; i++ {
			i := i
			grp.Go(func() error {
				recipe, err := s.gen.Generate(gctx, req)
				if err != nil {
					return err
				}
				results[i] = recipe
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return nil, err
		}
		feed := make([]models.Recipe, 0, count)
		for _, r := range results {
			feed = append(feed, *r)
		}
		return feed, nil
	}

	feed := make([]models.Recipe, 0, count)
	var firstErr error
	for i := 0; i < count; i++ {
		recipe, err := s.gen.Generate(ctx, req)
		if err != nil {
			// Calls are independent; one failure does not abort the rest.
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		feed = append(feed, *recipe)

		if i < count-1 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if len(feed) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return feed, nil
}

// ApplyFilter toggles the given filter and returns the resulting view.
// Selecting the active filter clears it back to the unfiltered feed.
func (s *RecommendationSession) ApplyFilter(kind FilterKind) []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeFilter == kind {
		s.activeFilter = FilterNone
	} else {
		s.activeFilter = kind
	}
	return s.viewLocked()
}

// SetQuery updates the free-text search and returns the resulting view.
func (s *RecommendationSession) SetQuery(query string) []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	return s.viewLocked()
}

// View returns the feed narrowed by the active filter and query.
func (s *RecommendationSession) View() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *RecommendationSession) viewLocked() []models.Recipe {
	return SearchFeed(FilterFeed(s.feed, s.activeFilter), s.query)
}

// Feed returns a copy of the full, unnarrowed feed.
func (s *RecommendationSession) Feed() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Recipe(nil), s.feed...)
}

// ActiveFilter returns the currently selected filter.
func (s *RecommendationSession) ActiveFilter() FilterKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFilter
}

// State returns the feed state and the last build error, if any.
func (s *RecommendationSession) State() (FeedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.lastErr
}

// SessionManager hands out one RecommendationSession per user.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*RecommendationSession
	gen      *Generator
	delay    time.Duration
}

// NewSessionManager creates a new SessionManager instance.
func NewSessionManager(gen *Generator, delay time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*RecommendationSession),
		gen:      gen,
		delay:    delay,
	}
}

// Session returns the user's session, creating it on first use.
func (m *SessionManager) Session(userID string) *RecommendationSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewRecommendationSession(m.gen, m.delay)
	m.sessions[userID] = s
	return s
}

// Drop discards the user's session. Called on sign-out.
func (m *SessionManager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
