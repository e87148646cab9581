package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterkuimelis/cardstack/internal/log"
)

// TestResolveOrderInversion: cards submitted A, B, C resolve C, B, A.
func TestResolveOrderInversion(t *testing.T) {
	s, _ := newTestStack(t,
		permanent("A", CardTypeCreature),
		permanent("B", CardTypeArtifact),
		permanent("C", CardTypeLand),
	)

	results := s.Resolve()

	if diff := cmp.Diff([]string{"C", "B", "A"}, resultCardNames(results)); diff != "" {
		t.Errorf("resolution order mismatch (-want +got):\n%s", diff)
	}
	for _, r := range results {
		if r.Result != ResultResolved {
			t.Errorf("%s: expected %q, got %q", r.Card.Name, ResultResolved, r.Result)
		}
	}
}

// TestResolveDrainsStack: a second resolve returns nothing and leaves health alone.
func TestResolveDrainsStack(t *testing.T) {
	s, _ := newTestStack(t, LightningBolt(), Forest())

	first := s.Resolve()
	if len(first) != 2 {
		t.Fatalf("expected 2 results, got %d", len(first))
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty stack after resolve, got %d pending", s.Len())
	}
	health := s.OpponentHealth

	second := s.Resolve()
	if second == nil {
		t.Fatal("expected empty, non-nil result log")
	}
	if len(second) != 0 {
		t.Errorf("expected no results on empty stack, got %d", len(second))
	}
	if s.OpponentHealth != health || s.PlayerHealth != StartingHealth {
		t.Errorf("health changed on empty resolve: player %d, opponent %d", s.PlayerHealth, s.OpponentHealth)
	}
	if s.Round != 2 {
		t.Errorf("expected round 2, got %d", s.Round)
	}
}

// TestDamageFloor: damage saturates at zero.
func TestDamageFloor(t *testing.T) {
	s, _ := newTestStack(t, Banefire(), Banefire(), Banefire())

	results := s.Resolve()

	var got []uint32
	for _, r := range results {
		got = append(got, r.OpponentHealth)
	}
	if diff := cmp.Diff([]uint32{10, 0, 0}, got); diff != "" {
		t.Errorf("opponent health snapshots (-want +got):\n%s", diff)
	}
	if s.OpponentHealth != 0 {
		t.Errorf("expected opponent at 0, got %d", s.OpponentHealth)
	}

	s.Add(LavaAxe())
	s.Resolve()
	if s.OpponentHealth != 0 {
		t.Errorf("expected opponent to stay at 0, got %d", s.OpponentHealth)
	}
}

// TestCounterCancelsTarget: [DealDamage(5), CounterSpell] counters the damage.
func TestCounterCancelsTarget(t *testing.T) {
	axe := burn("Axe", 5)
	s, logger := newTestStack(t, axe, Counterspell())

	results := s.Resolve()

	want := []ResolutionResult{
		{Card: Counterspell(), Result: "Countered Axe", PlayerHealth: 20, OpponentHealth: 20},
		{Card: axe, Result: ResultFizzled, PlayerHealth: 20, OpponentHealth: 20},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if s.OpponentHealth != StartingHealth {
		t.Errorf("expected opponent health unchanged, got %d", s.OpponentHealth)
	}
	if n := len(logger.EventsOfType(log.EventDamage)); n != 0 {
		t.Errorf("expected no damage events, got %d", n)
	}
}

// TestUntargetedCounterProducesNoEntry: a lone counter yields an empty log.
func TestUntargetedCounterProducesNoEntry(t *testing.T) {
	s, logger := newTestStack(t, Counterspell())

	results := s.Resolve()

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d: %v", len(results), resultMessages(results))
	}
	if n := len(logger.EventsOfType(log.EventCounterNoTarget)); n != 1 {
		t.Errorf("expected 1 CounterNoTarget event, got %d", n)
	}
	if s.Len() != 0 {
		t.Errorf("expected stack to be drained, got %d pending", s.Len())
	}
}

// TestCounterAfterResolvedCardFizzlesSilently: submitted [Counter, Bolt], the bolt
// resolves first and leaves the counter with nothing to target.
func TestCounterAfterResolvedCardFizzlesSilently(t *testing.T) {
	s, _ := newTestStack(t, Counterspell(), LightningBolt())

	results := s.Resolve()

	if diff := cmp.Diff([]string{"Dealt 3 damage"}, resultMessages(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if s.OpponentHealth != 17 {
		t.Errorf("expected opponent at 17, got %d", s.OpponentHealth)
	}
}

// TestHealthSnapshotConsistency: [DealDamage(3), DealDamage(4)] → 20→16→13.
func TestHealthSnapshotConsistency(t *testing.T) {
	three := burn("Three", 3)
	four := burn("Four", 4)
	s, _ := newTestStack(t, three, four)

	results := s.Resolve()

	want := []ResolutionResult{
		{Card: four, Result: "Dealt 4 damage", PlayerHealth: 20, OpponentHealth: 16},
		{Card: three, Result: "Dealt 3 damage", PlayerHealth: 20, OpponentHealth: 13},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

// TestDefaultVariantSymmetry: non-damage, non-counter cards follow the same
// counter/fizzle bookkeeping as damage, only with a different message.
func TestDefaultVariantSymmetry(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  []string
	}{
		{
			name:  "resolves alone",
			cards: []Card{GrizzlyBears()},
			want:  []string{ResultResolved},
		},
		{
			name:  "countered permanent fizzles",
			cards: []Card{SolRing(), Counterspell()},
			want:  []string{"Countered Sol Ring", ResultFizzled},
		},
		{
			name:  "countered damage fizzles the same way",
			cards: []Card{Shock(), Counterspell()},
			want:  []string{"Countered Shock", ResultFizzled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStack(t, tt.cards...)
			results := s.Resolve()
			if diff := cmp.Diff(tt.want, resultMessages(results)); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
			if s.OpponentHealth != StartingHealth {
				t.Errorf("expected no health change, got opponent %d", s.OpponentHealth)
			}
		})
	}
}

// TestCounterMatchesByValue flags a known quirk: targeting is by first matching
// value, so countering one of two identical cards fizzles both.
func TestCounterMatchesByValue(t *testing.T) {
	s, _ := newTestStack(t, Shock(), Shock(), Counterspell())

	results := s.Resolve()

	want := []string{"Countered Shock", ResultFizzled, ResultFizzled}
	if diff := cmp.Diff(want, resultMessages(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if s.OpponentHealth != StartingHealth {
		t.Errorf("expected both shocks to fizzle, opponent at %d", s.OpponentHealth)
	}
}

// TestCounterCanTargetEarlierCard: counters never join the resolved set, so a
// later counter may pick one that was processed before it.
func TestCounterCanTargetEarlierCard(t *testing.T) {
	s, _ := newTestStack(t, LightningBolt(), Counterspell(), Cancel())

	results := s.Resolve()

	want := []ResolutionResult{
		{Card: Cancel(), Result: "Countered Counterspell", PlayerHealth: 20, OpponentHealth: 20},
		{Card: Counterspell(), Result: "Countered Cancel", PlayerHealth: 20, OpponentHealth: 20},
		{Card: LightningBolt(), Result: "Dealt 3 damage", PlayerHealth: 20, OpponentHealth: 17},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

// TestIdenticalCountersSkipEachOther: the first counter takes the second; the
// second then skips the first (same value, already countered) and hits the bolt.
func TestIdenticalCountersSkipEachOther(t *testing.T) {
	s, _ := newTestStack(t, LightningBolt(), Counterspell(), Counterspell())

	results := s.Resolve()

	want := []string{"Countered Counterspell", "Countered Lightning Bolt", ResultFizzled}
	if diff := cmp.Diff(want, resultMessages(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if s.OpponentHealth != StartingHealth {
		t.Errorf("expected bolt to fizzle, opponent at %d", s.OpponentHealth)
	}
}

// healEffect stands in for a variant the resolver has no rule for.
type healEffect struct {
	Amount uint32 `json:"amount"`
}

func (healEffect) Kind() string { return "Heal" }

// TestUnknownVariantResolvesWithoutStateChange: the default arm handles new kinds.
func TestUnknownVariantResolvesWithoutStateChange(t *testing.T) {
	heal := Card{Name: "Healing Salve", Type: CardTypeInstant, Effect: healEffect{Amount: 3}}
	s, _ := newTestStack(t, Shock(), heal)

	results := s.Resolve()

	want := []string{ResultResolved, "Dealt 2 damage"}
	if diff := cmp.Diff(want, resultMessages(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if s.PlayerHealth != StartingHealth || s.OpponentHealth != 18 {
		t.Errorf("unexpected health: player %d, opponent %d", s.PlayerHealth, s.OpponentHealth)
	}
}

// TestHealthPersistsAcrossRounds: only health survives a resolve.
func TestHealthPersistsAcrossRounds(t *testing.T) {
	s, logger := newTestStack(t, LavaAxe())
	s.Resolve()

	s.Add(Shock())
	results := s.Resolve()

	if len(results) != 1 || results[0].OpponentHealth != 13 {
		t.Fatalf("expected opponent at 13 after second round, got %+v", results)
	}
	ends := logger.EventsOfType(log.EventResolveEnd)
	if len(ends) != 2 || ends[1].Round != 2 {
		t.Errorf("expected ResolveEnd for rounds 1 and 2, got %+v", ends)
	}
}

// TestStackConfigHealth: custom starting health is honored.
func TestStackConfigHealth(t *testing.T) {
	s := NewStackWithConfig(StackConfig{PlayerHealth: 30, OpponentHealth: 4})
	s.Add(LavaAxe())

	results := s.Resolve()

	if results[0].PlayerHealth != 30 || results[0].OpponentHealth != 0 {
		t.Errorf("unexpected snapshot: %+v", results[0])
	}
}

// TestPendingIsACopy: callers cannot mutate the pending sequence.
func TestPendingIsACopy(t *testing.T) {
	s, logger := newTestStack(t, Shock(), Forest())

	pending := s.Pending()
	pending[0] = Banefire()

	if got := s.Pending()[0].Name; got != "Shock" {
		t.Errorf("expected Shock at bottom of stack, got %s", got)
	}
	added := logger.EventsOfType(log.EventCardAdded)
	if len(added) != 2 || added[1].Card != "Forest" {
		t.Errorf("expected two CardAdded events, got %+v", added)
	}
}
