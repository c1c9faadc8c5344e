package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/domain/formation"
	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/platform/tracing"
)

// DraftService keeps one DraftSession per id and routes operations to it.
type DraftService struct {
	cfg        DraftSessionConfig
	playerRepo player.Repository

	mu       sync.RWMutex
	sessions map[string]*DraftSession
}

func NewDraftService(cfg DraftSessionConfig, playerRepo player.Repository) *DraftService {
	return &DraftService{
		cfg:        cfg.normalized(),
		playerRepo: playerRepo,
		sessions:   make(map[string]*DraftSession),
	}
}

// Formations lists every formation the catalog offers.
func (s *DraftService) Formations() []formation.Formation {
	return s.cfg.Catalog.All()
}

func (s *DraftService) DefaultFormation() string {
	return s.cfg.Catalog.DefaultName()
}

func (s *DraftService) Start(ctx context.Context, mode draft.Mode) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Start")
	defer span.End()

	session := NewDraftSession(s.cfg)
	snapshot, err := session.Start(ctx, mode)
	if err != nil {
		return snapshot, err
	}

	s.mu.Lock()
	s.sessions[snapshot.ID] = session
	s.mu.Unlock()
	return snapshot, nil
}

// Resume attaches to a session that is active in storage but not held here.
func (s *DraftService) Resume(ctx context.Context, id string) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Resume", tracing.SessionID(id))
	defer span.End()

	id = strings.TrimSpace(id)
	if session, ok := s.lookup(id); ok && session.Status() == draft.StatusActive {
		return session.Snapshot(), nil
	}

	session := NewDraftSession(s.cfg)
	snapshot, err := session.Resume(ctx, id)
	if err != nil {
		return snapshot, err
	}

	s.mu.Lock()
	if existing, ok := s.sessions[id]; ok && existing.Status() == draft.StatusActive {
		s.mu.Unlock()
		session.Reset()
		return existing.Snapshot(), nil
	}
	s.sessions[id] = session
	s.mu.Unlock()
	return snapshot, nil
}

func (s *DraftService) Session(id string) (*DraftSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	session, ok := s.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: draft session=%s", ErrNotFound, id)
	}
	return session, nil
}

func (s *DraftService) lookup(id string) (*DraftSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *DraftService) Snapshot(id string) (draft.Snapshot, error) {
	session, err := s.Session(id)
	if err != nil {
		return draft.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// CheckPurchase returns nil when the player could be bought right now.
func (s *DraftService) CheckPurchase(ctx context.Context, id, slug string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CheckPurchase", tracing.SessionID(id))
	defer span.End()

	session, err := s.Session(id)
	if err != nil {
		return player.Player{}, err
	}
	p, err := s.player(ctx, slug)
	if err != nil {
		return player.Player{}, err
	}
	return p, session.CheckPurchase(p)
}

func (s *DraftService) Buy(ctx context.Context, id, slug string) (draft.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Buy", tracing.SessionID(id))
	defer span.End()

	session, err := s.Session(id)
	if err != nil {
		return draft.Snapshot{}, err
	}
	p, err := s.player(ctx, slug)
	if err != nil {
		return session.Snapshot(), err
	}
	return session.Buy(ctx, p)
}

func (s *DraftService) Sell(ctx context.Context, id, slug string) (draft.Snapshot, error) {
	session, err := s.Session(id)
	if err != nil {
		return draft.Snapshot{}, err
	}
	return session.Sell(ctx, slug)
}

func (s *DraftService) SetFormation(ctx context.Context, id, name string) (draft.Snapshot, error) {
	session, err := s.Session(id)
	if err != nil {
		return draft.Snapshot{}, err
	}
	return session.SetFormation(ctx, name)
}

func (s *DraftService) AddBonus(ctx context.Context, id string, amount int64) (draft.Snapshot, error) {
	session, err := s.Session(id)
	if err != nil {
		return draft.Snapshot{}, err
	}
	return session.AddBonus(ctx, amount)
}

func (s *DraftService) Refresh(ctx context.Context, id string) (draft.Snapshot, error) {
	session, err := s.Session(id)
	if err != nil {
		return draft.Snapshot{}, err
	}
	return session.Refresh(ctx)
}

func (s *DraftService) Stop(ctx context.Context, id, username string) (draft.Summary, error) {
	session, err := s.Session(id)
	if err != nil {
		return draft.Summary{}, err
	}
	return session.Stop(ctx, username)
}

// Reset discards the local session. Storage keeps its record.
func (s *DraftService) Reset(id string) error {
	session, err := s.Session(id)
	if err != nil {
		return err
	}
	session.Reset()

	s.mu.Lock()
	if s.sessions[id] == session {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	return nil
}

// Deliver hands a push update to its session. Unknown sessions are ignored.
func (s *DraftService) Deliver(update draft.RemoteUpdate) bool {
	session, ok := s.lookup(strings.TrimSpace(update.SessionID))
	if !ok {
		return false
	}
	return session.Deliver(update)
}

// SweepStopped forgets sessions stopped at least retain ago and returns how
// many were dropped. Until then a stopped session still answers reads and
// rejects mutations with ErrSessionNotActive.
func (s *DraftService) SweepStopped(retain time.Duration) int {
	cutoff := s.cfg.Clock.Now().Add(-retain)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if at, ok := session.stoppedAt(); ok && !at.After(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Shutdown stops every session loop without writing to storage.
func (s *DraftService) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*DraftSession)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Reset()
	}
}

func (s *DraftService) player(ctx context.Context, slug string) (player.Player, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return player.Player{}, draft.Invalid(draft.ErrInvalidPlayer, "player slug is required")
	}
	if s.playerRepo == nil {
		return player.Player{}, fmt.Errorf("%w: player catalog not configured", ErrConfiguration)
	}
	p, ok, err := s.playerRepo.GetBySlug(ctx, slug)
	if err != nil {
		return player.Player{}, dependencyErr("get player", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, slug)
	}
	return p, nil
}
