package decision

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
	"github.com/angel-assistant/angel-core/internal/profile"
	"github.com/angel-assistant/angel-core/internal/timectx"
)

// Engine converts activity observations into ranked recommendation batches.
//
// One decision cycle: load the user profile, resolve the time context,
// look up the rule table for the observed activity, adjust the candidate
// list for time of day, personalize generic types against the profile,
// expand actuation details, score priorities against recent batches, and
// sort descending. Batches are kept in a bounded ring so later feedback
// can be correlated by batch ID.
//
// All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	store     profile.Store
	policy    FeedbackPolicy
	logger    Logger
	rules     map[string][]RecType
	threshold float64
	hist      *history

	playlists map[string]string
	maxTurns  int

	// Indirected for deterministic tests.
	now  func() time.Time
	pick func(n int) int
}

// NewEngine creates a decision engine from validated configuration.
// playlists maps playlist keys ("repas", "ambiance") to the player's
// playlist names; it may be nil when no music player is configured.
func NewEngine(cfg config.DecisionConfig, convo config.ConversationsConfig, playlists map[string]string, store profile.Store, policy FeedbackPolicy, logger Logger) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	if policy == nil {
		policy = NewLoggingPolicy(logger, cfg.LearningRate, cfg.UserFeedbackWeight)
	}

	rules := make(map[string][]RecType, len(cfg.DecisionRules))
	for activity, types := range cfg.DecisionRules {
		converted := make([]RecType, len(types))
		for i, t := range types {
			converted[i] = RecType(t)
		}
		rules[activity] = converted
	}

	return &Engine{
		store:     store,
		policy:    policy,
		logger:    logger,
		rules:     rules,
		threshold: cfg.ThresholdConfidence,
		hist:      newHistory(cfg.HistorySize),
		playlists: playlists,
		maxTurns:  convo.MaxTurns,
		now:       time.Now,
		pick:      rand.Intn,
	}
}

// Recommend runs one decision cycle for the observation and returns the
// ranked batch. The observation is also appended to the user's activity
// history.
//
// Malformed observations degrade rather than fail: confidence is clamped
// to [0,1] and an empty or unknown activity resolves through the default
// rule. A user ID is still required since the profile is loaded per call.
func (e *Engine) Recommend(ctx context.Context, obs Observation) (*Batch, error) {
	if obs.UserID == "" {
		return nil, ErrInvalidObservation
	}
	if obs.Confidence < 0 {
		obs.Confidence = 0
	} else if obs.Confidence > 1 {
		obs.Confidence = 1
	}

	prof, err := e.store.Load(ctx, obs.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
	}

	ts := obs.Timestamp
	if ts.IsZero() {
		ts = e.now()
	}
	if err := e.store.SaveActivity(ctx, obs.UserID, profile.ActivityRecord{
		Timestamp:  ts,
		Activity:   obs.Activity,
		Confidence: obs.Confidence,
	}); err != nil {
		e.logger.Warn("saving activity record", "user_id", obs.UserID, "error", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tc := timectx.Resolve(e.now())

	activity := obs.Activity
	if obs.Confidence < e.threshold {
		e.logger.Debug("confidence below threshold, using default activity",
			"activity", obs.Activity,
			"confidence", obs.Confidence,
			"threshold", e.threshold,
		)
		activity = defaultActivity
	}

	types := e.lookupRules(activity)
	types = adjustForContext(types, tc, activity)
	types = personalize(types, prof.Preferences)

	recent := e.hist.Recent(recentBatchWindow)
	candidates := make([]Candidate, 0, len(types))
	for _, t := range types {
		candidates = append(candidates, Candidate{
			Type:     t,
			Priority: scorePriority(t, activity, recent),
			Details:  e.expandDetails(t, activity, prof.Preferences),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	batch := &Batch{
		ID:          shortuuid.New(),
		UserID:      obs.UserID,
		Activity:    activity,
		Confidence:  obs.Confidence,
		TimeContext: tc,
		Candidates:  candidates,
		CreatedAt:   e.now(),
	}
	e.hist.Add(batch)

	e.logger.Info("recommendation batch created",
		"batch_id", batch.ID,
		"user_id", batch.UserID,
		"activity", activity,
		"time_of_day", tc.TimeOfDay,
		"candidates", len(candidates),
	)
	return batch, nil
}

// lookupRules returns a fresh candidate list for the activity, falling
// back to the default entry when no rule matches.
func (e *Engine) lookupRules(activity string) []RecType {
	types, ok := e.rules[activity]
	if !ok {
		types = e.rules[defaultActivity]
	}
	out := make([]RecType, len(types))
	copy(out, types)
	return out
}

// LastBatch returns the most recent recommendation batch, or false when no
// cycle has run yet.
func (e *Engine) LastBatch() (*Batch, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	recent := e.hist.Recent(1)
	if len(recent) == 0 {
		return nil, false
	}
	return recent[0], true
}

// ProcessFeedback records feedback against a prior batch and hands it to
// the feedback policy. Returns ErrBatchNotFound when the batch ID is
// unknown or evicted from history.
func (e *Engine) ProcessFeedback(ctx context.Context, batchID string, fb profile.Feedback) error {
	e.mu.Lock()
	batch := e.hist.Find(batchID)
	e.mu.Unlock()

	if batch == nil {
		return ErrBatchNotFound
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = e.now()
	}

	if err := e.store.SaveFeedback(ctx, batch.UserID, batchID, fb); err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}
	e.policy.Apply(batch, fb)
	return nil
}
