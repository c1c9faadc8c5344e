package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/domain/formation"
	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

const (
	// WildcardUsername is recorded when the countdown ends a wildcard draft.
	WildcardUsername = "Wildcard Player"

	tickInterval  = time.Second
	inboxSize     = 32
	expireTimeout = 10 * time.Second
)

// DraftSessionConfig carries the collaborators shared by every session.
type DraftSessionConfig struct {
	Repository  draft.Repository
	Leaderboard leaderboard.Repository
	Publisher   draft.Publisher
	Catalog     *formation.Catalog
	Rules       draft.Rules
	Clock       clockwork.Clock
	Logger      *logging.Logger
	// RandIntN returns a value in [0, n). Defaults to math/rand/v2.
	RandIntN func(n int) int
}

func (c DraftSessionConfig) normalized() DraftSessionConfig {
	if c.Catalog == nil {
		c.Catalog = formation.Default()
	}
	if c.Rules.SquadSize == 0 {
		c.Rules = draft.DefaultRules()
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.Logger == nil {
		c.Logger = logging.Default()
	}
	if c.RandIntN == nil {
		c.RandIntN = rand.IntN
	}
	return c
}

// DraftSession owns one draft. Mutations are serialized by opMu and hold it across
// their remote write; mu guards the in-memory fields for short reads and merges.
type DraftSession struct {
	cfg DraftSessionConfig

	opMu sync.Mutex

	mu        sync.RWMutex
	id        string
	status    draft.Status
	mode      draft.Mode
	state     draft.State
	target    int
	startedAt time.Time
	deadline  time.Time
	endedAt   time.Time
	pending   draft.Field
	gen       uint64
	cancel    context.CancelFunc

	inbox chan draft.RemoteUpdate
}

func NewDraftSession(cfg DraftSessionConfig) *DraftSession {
	return &DraftSession{
		cfg:    cfg.normalized(),
		status: draft.StatusNone,
		inbox:  make(chan draft.RemoteUpdate, inboxSize),
	}
}

func (s *DraftSession) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *DraftSession) Status() draft.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Start opens a new draft in the given mode and persists its initial record.
func (s *DraftSession) Start(ctx context.Context, mode draft.Mode) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.Start")
	defer span.End()

	if !mode.Valid() {
		return s.Snapshot(), fmt.Errorf("%w: unknown draft mode %q", ErrInvalidInput, mode)
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Status() == draft.StatusActive {
		return s.Snapshot(), draft.Invalid(draft.ErrSessionActive, "session %s", s.ID())
	}

	rules := s.cfg.Rules
	now := s.cfg.Clock.Now()
	initial := draft.NewSession{
		Mode:      mode,
		Purse:     rules.Budget(mode),
		Formation: s.cfg.Catalog.DefaultName(),
		StartedAt: now,
	}
	if mode == draft.ModeWildcard {
		initial.TargetRating = rules.MinTargetRating + s.cfg.RandIntN(rules.MaxTargetRating-rules.MinTargetRating+1)
	}

	id, err := s.cfg.Repository.Create(ctx, initial)
	if err != nil {
		s.cfg.Logger.WarnContext(ctx, "create draft session failed", "mode", mode, "error", err)
		return s.Snapshot(), draft.PersistenceFailed("create session", err)
	}

	s.activate(id, mode, draft.State{
		Purse:     initial.Purse,
		Formation: initial.Formation,
		Squad:     []draft.DraftedPlayer{},
	}, initial.TargetRating, now)

	snapshot := s.Snapshot()
	s.publish(ctx, draft.EventStarted, snapshot, nil)
	s.cfg.Logger.InfoContext(ctx, "draft started", "session_id", id, "mode", mode, "purse", initial.Purse, "target_rating", initial.TargetRating)
	return snapshot, nil
}

// Resume loads an active remote session into this handle.
func (s *DraftSession) Resume(ctx context.Context, id string) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.Resume")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return s.Snapshot(), fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Status() == draft.StatusActive {
		return s.Snapshot(), draft.Invalid(draft.ErrSessionActive, "session %s", s.ID())
	}

	rec, ok, err := s.cfg.Repository.Get(ctx, id)
	if err != nil {
		return s.Snapshot(), draft.PersistenceFailed("read session", err)
	}
	if !ok {
		return s.Snapshot(), fmt.Errorf("%w: draft session=%s", ErrNotFound, id)
	}
	if !rec.Active {
		return s.Snapshot(), draft.Invalid(draft.ErrSessionNotActive, "session %s already stopped", id)
	}

	f, err := s.cfg.Catalog.Lookup(rec.State.Formation)
	if err != nil {
		return s.Snapshot(), draft.Misconfigured(err)
	}
	squad, err := draft.Assign(rec.State.Squad, f)
	if err != nil {
		return s.Snapshot(), err
	}
	state := rec.State.Clone()
	state.Squad = squad

	s.activate(rec.ID, rec.Mode, state, rec.TargetRating, rec.StartedAt)

	snapshot := s.Snapshot()
	s.publish(ctx, draft.EventStarted, snapshot, nil)
	s.cfg.Logger.InfoContext(ctx, "draft resumed", "session_id", rec.ID, "mode", rec.Mode, "remaining", snapshot.Remaining)
	return snapshot, nil
}

func (s *DraftSession) activate(id string, mode draft.Mode, state draft.State, target int, startedAt time.Time) {
	loopCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.id = id
	s.mode = mode
	s.state = state
	s.target = target
	s.startedAt = startedAt
	s.deadline = time.Time{}
	if mode == draft.ModeWildcard {
		s.deadline = startedAt.Add(s.cfg.Rules.WildcardDuration)
	}
	s.endedAt = time.Time{}
	s.pending = 0
	s.status = draft.StatusActive
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(loopCtx, gen)
}

// CanBuy reports whether Buy would currently accept the player.
func (s *DraftSession) CanBuy(p player.Player) bool {
	return s.CheckPurchase(p) == nil
}

// CheckPurchase returns the reason Buy would reject the player, or nil.
func (s *DraftSession) CheckPurchase(p player.Player) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status != draft.StatusActive {
		return draft.Invalid(draft.ErrSessionNotActive, "no active session")
	}
	f, err := s.cfg.Catalog.Lookup(s.state.Formation)
	if err != nil {
		return draft.Misconfigured(err)
	}
	return s.cfg.Rules.ValidatePurchase(s.state.Clone(), f, candidateFrom(p))
}

// Buy drafts a player, deducting its parsed value from the purse.
func (s *DraftSession) Buy(ctx context.Context, p player.Player) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.Buy")
	defer span.End()

	c := candidateFrom(p)
	return s.mutate(ctx, "buy", draft.FieldPurse|draft.FieldSquad, func(state draft.State, f formation.Formation) (draft.State, error) {
		return s.cfg.Rules.Purchase(state, f, c)
	})
}

// Sell removes a player and refunds its purchase price in full.
func (s *DraftSession) Sell(ctx context.Context, slug string) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.Sell")
	defer span.End()

	slug = strings.TrimSpace(slug)
	return s.mutate(ctx, "sell", draft.FieldPurse|draft.FieldSquad, func(state draft.State, f formation.Formation) (draft.State, error) {
		return s.cfg.Rules.Sale(state, f, slug)
	})
}

// SetFormation switches formation and reassigns the whole squad.
func (s *DraftSession) SetFormation(ctx context.Context, name string) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.SetFormation")
	defer span.End()

	target, ok := s.cfg.Catalog.Get(name)
	if !ok {
		return s.Snapshot(), draft.Invalid(draft.ErrUnknownFormation, "%q", name)
	}
	return s.mutate(ctx, "set formation", draft.FieldFormation|draft.FieldSquad, func(state draft.State, _ formation.Formation) (draft.State, error) {
		return s.cfg.Rules.Reform(state, target)
	})
}

// AddBonus adjusts the score-only bonus accumulator. Negative amounts are allowed.
func (s *DraftSession) AddBonus(ctx context.Context, amount int64) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.AddBonus")
	defer span.End()

	return s.mutate(ctx, "add bonus", draft.FieldBonus, func(state draft.State, _ formation.Formation) (draft.State, error) {
		next := state.Clone()
		next.BonusMoney += amount
		return next, nil
	})
}

type transition func(state draft.State, f formation.Formation) (draft.State, error)

// mutate validates and applies a transition locally, persists the touched fields
// and restores them if the write fails. Fields listed in pending are shielded from
// push updates until the write settles.
func (s *DraftSession) mutate(ctx context.Context, op string, fields draft.Field, apply transition) (draft.Snapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.status != draft.StatusActive {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, draft.Invalid(draft.ErrSessionNotActive, "%s requires an active session", op)
	}
	f, err := s.cfg.Catalog.Lookup(s.state.Formation)
	if err != nil {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, draft.Misconfigured(err)
	}
	prev := s.state.Clone()
	next, err := apply(prev, f)
	if err != nil {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, err
	}
	s.state = fields.Merge(s.state, next)
	s.pending = fields
	id := s.id
	s.mu.Unlock()

	if err := s.cfg.Repository.Save(ctx, id, next.Clone(), fields); err != nil {
		s.mu.Lock()
		s.state = fields.Merge(s.state, prev)
		s.pending = 0
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		s.cfg.Logger.WarnContext(ctx, "draft write failed, rolled back", "session_id", id, "op", op, "error", err)
		return snapshot, draft.PersistenceFailed(op, err)
	}

	s.mu.Lock()
	s.pending = 0
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(ctx, draft.EventUpdated, snapshot, nil)
	s.cfg.Logger.DebugContext(ctx, "draft updated", "session_id", id, "op", op, "purse", snapshot.Purse, "squad_size", len(snapshot.Squad))
	return snapshot, nil
}

// Refresh re-reads the remote record. On failure the local state is kept.
func (s *DraftSession) Refresh(ctx context.Context) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.Refresh")
	defer span.End()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	id, status := s.id, s.status
	s.mu.RUnlock()
	if status != draft.StatusActive {
		return s.Snapshot(), draft.Invalid(draft.ErrSessionNotActive, "refresh requires an active session")
	}

	rec, ok, err := s.cfg.Repository.Get(ctx, id)
	if err != nil {
		return s.Snapshot(), draft.PersistenceFailed("read session", err)
	}
	if !ok {
		return s.Snapshot(), draft.PersistenceFailed("read session", fmt.Errorf("session %s missing", id))
	}

	s.apply(ctx, draft.RemoteUpdate{
		SessionID:  id,
		Purse:      &rec.State.Purse,
		BonusMoney: &rec.State.BonusMoney,
		Squad:      rec.State.Squad,
		HasSquad:   true,
	})
	if rec.Active {
		return s.Snapshot(), nil
	}

	// Stopped elsewhere.
	s.mu.Lock()
	s.status = draft.StatusStopped
	s.endedAt = s.cfg.Clock.Now()
	if rec.EndedAt != nil {
		s.endedAt = *rec.EndedAt
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(ctx, draft.EventStopped, snapshot, nil)
	return snapshot, nil
}

// Stop ends the draft. A leaderboard entry is written only when username is set.
func (s *DraftSession) Stop(ctx context.Context, username string) (draft.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftSession.Stop")
	defer span.End()

	return s.stop(ctx, strings.TrimSpace(username), 0)
}

// stop with a non-zero gen only acts on that activation.
func (s *DraftSession) stop(ctx context.Context, username string, gen uint64) (draft.Summary, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	active := s.status == draft.StatusActive && (gen == 0 || gen == s.gen)
	id, mode := s.id, s.mode
	state := s.state.Clone()
	s.mu.RUnlock()
	if !active {
		return draft.Summary{}, draft.Invalid(draft.ErrSessionNotActive, "stop requires an active session")
	}

	now := s.cfg.Clock.Now()
	finalScore := state.FinalScore()
	entry := leaderboard.Entry{Username: username, Score: finalScore, SessionID: id, Mode: string(mode), CreatedAt: now}
	if username != "" {
		if err := entry.Validate(); err != nil {
			return draft.Summary{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	if err := s.cfg.Repository.Deactivate(ctx, id, now, finalScore); err != nil {
		s.cfg.Logger.WarnContext(ctx, "deactivate draft failed", "session_id", id, "error", err)
		return draft.Summary{}, draft.PersistenceFailed("deactivate session", err)
	}

	s.mu.Lock()
	s.status = draft.StatusStopped
	s.endedAt = now
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	summary := s.summaryLocked(username)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(ctx, draft.EventStopped, snapshot, &summary)
	s.cfg.Logger.InfoContext(ctx, "draft stopped", "session_id", id, "final_score", finalScore, "username", username)

	if username == "" || s.cfg.Leaderboard == nil {
		return summary, nil
	}
	if err := s.cfg.Leaderboard.Append(ctx, entry); err != nil {
		s.cfg.Logger.ErrorContext(ctx, "append leaderboard entry failed", "session_id", id, "error", err)
		return summary, draft.PersistenceFailed("append leaderboard entry", err)
	}
	return summary, nil
}

// stoppedAt reports when the session stopped. ok is false unless it is stopped.
func (s *DraftSession) stoppedAt() (at time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endedAt, s.status == draft.StatusStopped
}

// Reset drops all local state without touching remote storage.
func (s *DraftSession) Reset() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	last := s.snapshotLocked()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.id = ""
	s.status = draft.StatusNone
	s.mode = ""
	s.state = draft.State{}
	s.target = 0
	s.startedAt = time.Time{}
	s.deadline = time.Time{}
	s.endedAt = time.Time{}
	s.pending = 0
	s.mu.Unlock()

	s.publish(context.Background(), draft.EventReset, last, nil)
	for {
		select {
		case <-s.inbox:
		default:
			return
		}
	}
}

// Deliver queues an out-of-band update. It never blocks; a full inbox drops the
// update and reports false.
func (s *DraftSession) Deliver(update draft.RemoteUpdate) bool {
	select {
	case s.inbox <- update:
		return true
	default:
		s.cfg.Logger.Warn("draft inbox full, dropping update", "session_id", update.SessionID)
		return false
	}
}

func (s *DraftSession) run(ctx context.Context, gen uint64) {
	ticker := s.cfg.Clock.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-s.inbox:
			s.apply(ctx, update)
		case <-ticker.Chan():
			if done := s.tick(ctx, gen); done {
				return
			}
		}
	}
}

// tick reports true once the loop has nothing left to do for gen.
func (s *DraftSession) tick(ctx context.Context, gen uint64) bool {
	s.mu.RLock()
	if gen != s.gen || s.status != draft.StatusActive {
		s.mu.RUnlock()
		return true
	}
	snapshot := s.snapshotLocked()
	wildcard := s.mode == draft.ModeWildcard
	s.mu.RUnlock()

	if !wildcard || snapshot.Remaining > 0 {
		s.publish(ctx, draft.EventTick, snapshot, nil)
		return false
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), expireTimeout)
	defer cancel()
	_, err := s.stop(stopCtx, WildcardUsername, gen)
	switch {
	case err == nil:
		return true
	case errors.Is(err, draft.ErrSessionNotActive):
		return true
	case errors.Is(err, draft.ErrPersistence) && s.Status() == draft.StatusStopped:
		// Deactivation landed; only the leaderboard write failed.
		return true
	default:
		s.cfg.Logger.Error("wildcard auto-stop failed, retrying", "session_id", snapshot.ID, "error", err)
		return false
	}
}

// apply merges a push update, skipping fields an in-flight mutation still owns.
func (s *DraftSession) apply(ctx context.Context, update draft.RemoteUpdate) {
	s.mu.Lock()
	if s.status != draft.StatusActive || update.SessionID != s.id {
		s.mu.Unlock()
		return
	}

	changed := false
	if update.Purse != nil && !s.pending.Has(draft.FieldPurse) && *update.Purse != s.state.Purse {
		if *update.Purse < 0 {
			s.cfg.Logger.WarnContext(ctx, "ignoring negative remote purse", "session_id", s.id, "purse", *update.Purse)
		} else {
			s.state.Purse = *update.Purse
			changed = true
		}
	}
	if update.BonusMoney != nil && !s.pending.Has(draft.FieldBonus) && *update.BonusMoney != s.state.BonusMoney {
		s.state.BonusMoney = *update.BonusMoney
		changed = true
	}
	if update.HasSquad && !s.pending.Has(draft.FieldSquad) {
		if err := s.cfg.Rules.ValidateSquad(update.Squad); err != nil {
			s.cfg.Logger.WarnContext(ctx, "ignoring remote squad", "session_id", s.id, "error", err)
		} else if squad, err := s.reassignLocked(update.Squad); err != nil {
			s.cfg.Logger.WarnContext(ctx, "ignoring remote squad", "session_id", s.id, "error", err)
		} else if !sameSquad(squad, s.state.Squad) {
			s.state.Squad = squad
			changed = true
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.publish(ctx, draft.EventExternal, snapshot, nil)
	}
}

func (s *DraftSession) reassignLocked(squad []draft.DraftedPlayer) ([]draft.DraftedPlayer, error) {
	f, err := s.cfg.Catalog.Lookup(s.state.Formation)
	if err != nil {
		return nil, draft.Misconfigured(err)
	}
	return draft.Assign(squad, f)
}

// Snapshot returns a consistent copy of the current state.
func (s *DraftSession) Snapshot() draft.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *DraftSession) snapshotLocked() draft.Snapshot {
	snapshot := draft.Snapshot{
		ID:           s.id,
		Status:       s.status,
		Mode:         s.mode,
		Purse:        s.state.Purse,
		BonusMoney:   s.state.BonusMoney,
		Formation:    s.state.Formation,
		Squad:        draft.CloneSquad(s.state.Squad),
		TargetRating: s.target,
		StartedAt:    s.startedAt,
	}
	if f, ok := s.cfg.Catalog.Get(s.state.Formation); ok {
		snapshot.Lineup = draft.Lineup(snapshot.Squad, f)
	} else {
		snapshot.Lineup = draft.CloneSquad(snapshot.Squad)
	}

	if s.status == draft.StatusNone {
		return snapshot
	}
	end := s.cfg.Clock.Now()
	if s.status == draft.StatusStopped {
		end = s.endedAt
	}
	snapshot.Elapsed = end.Sub(s.startedAt)
	if !s.deadline.IsZero() {
		snapshot.Remaining = max(s.deadline.Sub(end), 0)
		snapshot.Elapsed = min(snapshot.Elapsed, s.cfg.Rules.WildcardDuration)
	}
	return snapshot
}

func (s *DraftSession) summaryLocked(username string) draft.Summary {
	snapshot := s.snapshotLocked()
	avg := draft.AverageRating(s.state.Squad)
	return draft.Summary{
		SessionID:     s.id,
		Mode:          s.mode,
		Username:      username,
		FinalScore:    s.state.FinalScore(),
		Purse:         s.state.Purse,
		BonusMoney:    s.state.BonusMoney,
		PlayerCount:   len(s.state.Squad),
		AverageRating: avg,
		TotalSpent:    draft.TotalSpent(s.state.Squad),
		Elapsed:       snapshot.Elapsed,
		TargetRating:  s.target,
		TargetMet:     s.mode == draft.ModeWildcard && len(s.state.Squad) > 0 && avg >= float64(s.target),
		EndedAt:       s.endedAt,
	}
}

func (s *DraftSession) publish(ctx context.Context, eventType string, snapshot draft.Snapshot, summary *draft.Summary) {
	if s.cfg.Publisher == nil || snapshot.ID == "" {
		return
	}
	event := draft.Event{Type: eventType, Snapshot: snapshot, Summary: summary, At: s.cfg.Clock.Now()}
	if err := s.cfg.Publisher.Publish(ctx, snapshot.ID, event); err != nil {
		s.cfg.Logger.WarnContext(ctx, "publish draft event failed", "session_id", snapshot.ID, "event", eventType, "error", err)
	}
}

func candidateFrom(p player.Player) draft.Candidate {
	return draft.Candidate{
		Slug:     strings.TrimSpace(p.Slug),
		Name:     p.Name,
		Position: p.Position,
		Rating:   p.Rating,
		Price:    p.Price(),
	}
}

func sameSquad(a, b []draft.DraftedPlayer) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
