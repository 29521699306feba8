package game

import (
	"reflect"
	"testing"
)

func TestNextPhase(t *testing.T) {
	tests := []struct {
		phase  Phase
		want   Phase
		wantOK bool
	}{
		{PhaseDescribe, PhaseOneWord, true},
		{PhaseOneWord, PhaseCharades, true},
		{PhaseCharades, "", false},
		{Phase("bogus"), "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			got, ok := NextPhase(tt.phase)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextPhase(%q) = %q, %v; want %q, %v", tt.phase, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOtherTeamID(t *testing.T) {
	s := buildSession()
	if got := OtherTeamID(s, teamA); got != teamB {
		t.Errorf("OtherTeamID(A) = %q, want %q", got, teamB)
	}
	if got := OtherTeamID(s, teamB); got != teamA {
		t.Errorf("OtherTeamID(B) = %q, want %q", got, teamA)
	}
	if got := OtherTeamID(s, "stranger"); got != teamA {
		t.Errorf("OtherTeamID(unknown) = %q, want first team %q", got, teamA)
	}
}

func TestScores(t *testing.T) {
	s := buildSession()
	s.PhaseState.Describe = phaseWith([]string{}, []string{"c1", "c2"}, []string{})
	s.PhaseResults.Describe = PhaseResult{teamA: 5, teamB: 3}
	s.PhaseState.OneWord = phaseWith([]string{"c2"}, []string{}, []string{"c1"})

	if got := TeamPhaseScore(s, teamA, PhaseDescribe); got != 2 {
		t.Errorf("TeamPhaseScore(A, describe) = %d, want 2", got)
	}
	if got := TeamPhaseResult(s, teamA, PhaseDescribe); got != 5 {
		t.Errorf("TeamPhaseResult(A, describe) = %d, want finalized 5", got)
	}
	if got := TeamTotalScore(s, teamA); got != 5 {
		t.Errorf("TeamTotalScore(A) = %d, want 5", got)
	}
	if got := TeamTotalScore(s, teamB); got != 4 {
		t.Errorf("TeamTotalScore(B) = %d, want 4", got)
	}
	if id, tie := Winner(s); id != teamA || tie {
		t.Errorf("Winner = %q, tie=%v; want %q", id, tie, teamA)
	}

	s.PhaseResults.Describe = PhaseResult{teamA: 3, teamB: 3}
	s.PhaseState.OneWord = phaseWith([]string{"c2"}, []string{}, []string{})
	if _, tie := Winner(s); !tie {
		t.Error("equal totals should be a tie")
	}
}

func TestBowlQueries(t *testing.T) {
	s := buildSession()
	if IsPhaseComplete(s, PhaseDescribe) {
		t.Error("describe should not be complete")
	}
	if got := CardsInBowlCount(s, PhaseOneWord); got != 2 {
		t.Errorf("CardsInBowlCount = %d, want 2", got)
	}
	s.PhaseState.Charades = phaseWith([]string{}, []string{}, []string{})
	if !IsPhaseComplete(s, PhaseCharades) {
		t.Error("charades with an empty bowl should be complete")
	}

	c, ok := CardByID(s, "c2")
	if !ok || c.Text != "Beta" {
		t.Errorf("CardByID(c2) = %+v, %v", c, ok)
	}
	if _, ok := CardByID(s, "missing"); ok {
		t.Error("CardByID(missing) should not be found")
	}
}

func TestSelectors(t *testing.T) {
	s := buildSession()
	if _, ok := CurrentCard(s); ok {
		t.Error("no card should be in hand before a turn")
	}
	if IsTurnRunning(s) || CanUndo(s) {
		t.Error("no turn: not running, nothing to undo")
	}
	s = mustStart(t, s)
	c, ok := CurrentCard(s)
	if !ok || c.ID != "c1" {
		t.Errorf("CurrentCard = %+v, %v; want c1", c, ok)
	}
	a, b := Teams(s)
	if a.ID != teamA || b.ID != teamB {
		t.Errorf("Teams = %q, %q", a.ID, b.ID)
	}
	if team, ok := TeamByID(s, teamB); !ok || team.Name != "B" {
		t.Errorf("TeamByID(B) = %+v, %v", team, ok)
	}
}

func TestMergeUniqueCardIDs(t *testing.T) {
	got := mergeUniqueCardIDs([]string{"a", "b", "a"}, []string{"c", "b"}, nil)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeUniqueCardIDs = %v, want %v", got, want)
	}
	if got := mergeUniqueCardIDs(); got == nil || len(got) != 0 {
		t.Errorf("empty merge = %#v, want empty non-nil slice", got)
	}
}

func TestRandShuffleKeepsElements(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	out := RandShuffle(in)
	if !reflect.DeepEqual(in, []string{"a", "b", "c", "d", "e"}) {
		t.Fatal("RandShuffle modified its input")
	}
	seen := map[string]int{}
	for _, id := range out {
		seen[id]++
	}
	for _, id := range in {
		if seen[id] != 1 {
			t.Errorf("%q appears %d times in shuffle", id, seen[id])
		}
	}
}
