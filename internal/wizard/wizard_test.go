package wizard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bowl-game/bowl/internal/testutil"
)

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
}

func TestReadFileToInput(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{"setup.yaml": testutil.SetupYAML()})

	setup, err := ReadFile(filepath.Join(dir, "setup.yaml"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	input, err := setup.ToInput(Options{MinCards: 10, TurnSeconds: 60}, counter())
	if err != nil {
		t.Fatalf("ToInput failed: %v", err)
	}

	if input.TeamNames != [2]string{"Red", "Blue"} {
		t.Errorf("TeamNames = %v", input.TeamNames)
	}
	if input.TurnSeconds != 30 {
		t.Errorf("TurnSeconds = %d, want 30", input.TurnSeconds)
	}
	if len(input.Players) != 2 || input.Players[0].Name != "Ada" || input.Players[1].TeamIndex != 1 {
		t.Errorf("Players = %+v", input.Players)
	}
	if len(input.Cards) != 12 {
		t.Fatalf("got %d cards, want 12", len(input.Cards))
	}
	if input.Cards[0].CreatedByPlayerID != input.Players[0].ID {
		t.Errorf("card author = %q, want %q", input.Cards[0].CreatedByPlayerID, input.Players[0].ID)
	}
	if input.Cards[1].CreatedByPlayerID != "" {
		t.Errorf("anonymous card author = %q, want empty", input.Cards[1].CreatedByPlayerID)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"team trimmed", SanitizeTeamName, "  Red  ", "Red"},
		{"team capped", SanitizeTeamName, strings.Repeat("x", 25), strings.Repeat("x", MaxTeamName)},
		{"player capped by runes", SanitizePlayerName, strings.Repeat("é", 30), strings.Repeat("é", MaxPlayerName)},
		{"card blank", SanitizeCardText, "   ", ""},
		{"card capped", SanitizeCardText, strings.Repeat("a", 100), strings.Repeat("a", MaxCardText)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToInputErrors(t *testing.T) {
	cards := func(n int) []CardEntry {
		out := make([]CardEntry, n)
		for i := range out {
			out[i] = CardEntry{Text: fmt.Sprintf("card %d", i)}
		}
		return out
	}

	tests := []struct {
		name    string
		setup   Setup
		wantErr error
	}{
		{"too few cards", Setup{Cards: cards(9)}, ErrTooFewCards},
		{"blank cards do not count", Setup{Cards: append(cards(9), CardEntry{Text: "  "})}, ErrTooFewCards},
		{"blank team name", Setup{Teams: []string{"  ", "Blue"}, Cards: cards(10)}, ErrTeamNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.setup.ToInput(Options{}, counter())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToInput error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	bad := []Setup{
		{Teams: []string{"a", "b", "c"}, Cards: cards(10)},
		{Players: []PlayerEntry{{Name: "Ada", Team: 2}}, Cards: cards(10)},
		{Cards: append(cards(10), CardEntry{Text: "Elvis", By: "Nobody"})},
	}
	for i, s := range bad {
		if _, err := s.ToInput(Options{}, counter()); err == nil {
			t.Errorf("setup %d: expected error", i)
		}
	}
}

func TestToInputDefaults(t *testing.T) {
	s := Setup{StarterPack: true}
	input, err := s.ToInput(Options{TurnSeconds: 45, TeamNames: []string{"Owls"}}, nil)
	if err != nil {
		t.Fatalf("ToInput failed: %v", err)
	}
	if input.TeamNames != [2]string{"Owls", "Team B"} {
		t.Errorf("TeamNames = %v", input.TeamNames)
	}
	if input.TurnSeconds != 45 {
		t.Errorf("TurnSeconds = %d, want 45", input.TurnSeconds)
	}
	if len(input.Cards) != len(StarterCards) {
		t.Errorf("got %d cards, want %d", len(input.Cards), len(StarterCards))
	}
	if input.Cards[0].ID == "" || input.Cards[0].ID == input.Cards[1].ID {
		t.Error("cards should get distinct generated ids")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("cards: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
