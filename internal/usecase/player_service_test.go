package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/futdraft/internal/mocks/domain/player"
)

func TestPlayerService_ListNormalizesFilter(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	filter := player.Filter{Position: "ST", MinRating: 85, Limit: player.DefaultListLimit}
	repo.On("List", mock.Anything, filter).
		Return([]player.Player{{Slug: "harry-kane", Name: "Kane", Rating: 90, Position: "ST", ValueText: "€103M"}}, nil).
		Once()
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

	svc := NewPlayerService(repo)
	items, err := svc.List(t.Context(), player.Filter{Name: "  ", Position: " st ", MinRating: 85})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "harry-kane" {
		t.Fatalf("unexpected items: %+v", items)
	}

	if _, err := svc.List(t.Context(), player.Filter{MaxRating: 70}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestPlayerService_ListValidation(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
	tests := []player.Filter{
		{Position: "XX"},
		{MinRating: 90, MaxRating: 80},
		{MinValueMil: 100, MaxValueMil: 50},
	}
	for _, filter := range tests {
		if _, err := svc.List(t.Context(), filter); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("filter %+v: expected ErrInvalidInput, got %v", filter, err)
		}
	}
}

func TestPlayerService_ListFiltersCatalog(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
	items, err := svc.List(t.Context(), player.Filter{MinValueMil: 150, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(items))
	}
	for _, p := range items {
		if p.Price() < 150_000_000 {
			t.Fatalf("value filter not applied: %+v", p)
		}
	}
	if items[0].Rating < items[1].Rating {
		t.Fatalf("expected rating order: %+v", items)
	}
}

func TestPlayerService_Get(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
	if _, err := svc.Get(t.Context(), "rodri"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, err := svc.Get(t.Context(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
