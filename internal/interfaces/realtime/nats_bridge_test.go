package realtime

import (
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

type recordingDeliverer struct {
	updates []draft.RemoteUpdate
}

func (d *recordingDeliverer) Deliver(update draft.RemoteUpdate) bool {
	d.updates = append(d.updates, update)
	return true
}

func TestNATSBridge_Subjects(t *testing.T) {
	b := NewNATSBridge(nil, "futdraft.drafts.", logging.NewNop())
	if got := b.EventsSubject("d1"); got != "futdraft.drafts.d1.events" {
		t.Fatalf("unexpected events subject %q", got)
	}
	if got := b.adjustSubject(); got != "futdraft.drafts.*.adjust" {
		t.Fatalf("unexpected adjust subject %q", got)
	}

	tests := map[string]string{
		"futdraft.drafts.d1.adjust":   "d1",
		"futdraft.drafts.d1.x.adjust": "",
		"other.drafts.d1.adjust":      "",
		"futdraft.drafts.d1.events":   "",
	}
	for subject, want := range tests {
		if got := b.sessionFromSubject(subject); got != want {
			t.Fatalf("sessionFromSubject(%q) = %q, want %q", subject, got, want)
		}
	}
}

func TestNATSBridge_HandleAdjustment(t *testing.T) {
	b := NewNATSBridge(nil, "futdraft.drafts", logging.NewNop())
	target := &recordingDeliverer{}

	b.handleAdjustment(target, &nats.Msg{Subject: "futdraft.drafts.d1.adjust", Data: []byte(`{"bonus_money":25000000}`)})
	b.handleAdjustment(target, &nats.Msg{Subject: "futdraft.drafts.d1.adjust", Data: []byte(`{"session_id":"d2","squad":[]}`)})
	b.handleAdjustment(target, &nats.Msg{Subject: "futdraft.drafts.d1.adjust", Data: []byte(`not json`)})
	b.handleAdjustment(target, &nats.Msg{Subject: "elsewhere", Data: []byte(`{}`)})

	if len(target.updates) != 2 {
		t.Fatalf("expected 2 delivered updates, got %d", len(target.updates))
	}
	first := target.updates[0]
	if first.SessionID != "d1" || first.BonusMoney == nil || *first.BonusMoney != 25_000_000 || first.HasSquad {
		t.Fatalf("unexpected first update %+v", first)
	}
	second := target.updates[1]
	if second.SessionID != "d2" || !second.HasSquad || second.Purse != nil {
		t.Fatalf("unexpected second update %+v", second)
	}
}
