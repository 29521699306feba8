// Package testutil provides test helper utilities for bowl tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Team ids used by every session fixture.
const (
	TeamA = "team-a"
	TeamB = "team-b"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Decode parses a JSON fixture into the generic shape json.Unmarshal produces.
func Decode(t *testing.T, blob string) any {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return raw
}

func encode(v map[string]interface{}) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

func baseSession() map[string]interface{} {
	return map[string]interface{}{
		"id":        "session-1",
		"createdAt": 1,
		"teams": []map[string]interface{}{
			{"id": TeamA, "name": "A", "score": 0},
			{"id": TeamB, "name": "B", "score": 0},
		},
		"players": []map[string]interface{}{
			{"id": "player-a", "name": "Player A", "teamId": TeamA},
			{"id": "player-b", "name": "Player B", "teamId": TeamB},
		},
		"deck": []map[string]interface{}{
			{"id": "c1", "text": "Alpha"},
			{"id": "c2", "text": "Beta"},
			{"id": "c3", "text": "Gamma"},
		},
		"phase":      "describe",
		"turn":       nil,
		"settings":   map[string]interface{}{"turnSeconds": 45},
		"gameStatus": "playing",
	}
}

func buckets(a, b []string) map[string][]string {
	return map[string][]string{TeamA: a, TeamB: b}
}

// CurrentSessionBlob is a session written by the current rules: one shared
// bowl per phase and empty passed buckets.
func CurrentSessionBlob() string {
	s := baseSession()
	phase := func(bowl []string) map[string]interface{} {
		return map[string]interface{}{
			"mainBowl":     bowl,
			"passedToTeam": buckets([]string{}, []string{}),
			"scoredByTeam": buckets([]string{}, []string{}),
		}
	}
	s["phaseState"] = map[string]interface{}{
		"describe": map[string]interface{}{
			"mainBowl":     []string{"c3"},
			"passedToTeam": buckets([]string{}, []string{}),
			"scoredByTeam": buckets([]string{"c1"}, []string{}),
		},
		"oneWord":  phase([]string{"c1", "c2", "c3"}),
		"charades": phase([]string{"c3", "c2", "c1"}),
	}
	s["phaseResults"] = map[string]interface{}{"describe": nil, "oneWord": nil, "charades": nil}
	s["lastTeamId"] = TeamA
	s["turn"] = map[string]interface{}{
		"activeTeamId":     TeamA,
		"activePlayerId":   "player-a",
		"secondsRemaining": 30,
		"isRunning":        true,
		"startedAt":        1000,
		"currentCardId":    "c2",
		"history": []map[string]interface{}{
			{"type": "gotIt", "cardId": "c1", "teamId": TeamA, "phase": "describe", "nextCardId": "c2"},
		},
	}
	return encode(s)
}

// PassedPileBlob is a shared-bowl session from the build that still parked
// passed cards in a per-team pile.
func PassedPileBlob() string {
	s := baseSession()
	s["phaseState"] = map[string]interface{}{
		"describe": map[string]interface{}{
			"mainBowl":     []string{"c3"},
			"passedToTeam": buckets([]string{"c2"}, []string{}),
			"scoredByTeam": buckets([]string{"c1"}, []string{}),
		},
		"oneWord": map[string]interface{}{
			"mainBowl":     []string{"c1", "c2", "c3"},
			"passedToTeam": map[string][]string{},
		},
		"charades": map[string]interface{}{
			"mainBowl": []string{"c1", "c2", "c3"},
		},
	}
	return encode(s)
}

// DrawPileBlob is a session from the generation where each team drew from
// its own pile.
func DrawPileBlob() string {
	s := baseSession()
	phase := func(a, b []string, scoredA, scoredB []string) map[string]interface{} {
		return map[string]interface{}{
			"drawPileByTeam": buckets(a, b),
			"scoredByTeam":   buckets(scoredA, scoredB),
		}
	}
	s["phaseState"] = map[string]interface{}{
		"describe": phase([]string{"c2", "c3"}, []string{"c3", "c1"}, []string{}, []string{}),
		"oneWord":  phase([]string{}, []string{}, []string{"c1", "c2"}, []string{"c3"}),
		"charades": phase([]string{"c1"}, []string{"c2", "c3"}, []string{}, []string{}),
	}
	s["phase"] = "describe"
	return encode(s)
}

// BareBlob is a session from the first generation: no phase state at all,
// a discard pile and numeric scores on the session itself.
func BareBlob() string {
	s := baseSession()
	delete(s, "settings")
	delete(s, "gameStatus")
	s["discard"] = []map[string]interface{}{{"id": "c1", "text": "Alpha"}}
	s["scoredByTeam"] = map[string]int{TeamA: 2, TeamB: 1}
	s["turn"] = map[string]interface{}{"secondsRemaining": 10}
	return encode(s)
}

// SetupYAML returns a setup wizard file with two players and twelve cards.
func SetupYAML() string {
	return `teams: ["Red", "Blue"]
turn_seconds: 30
players:
  - name: "  Ada  "
    team: 0
  - name: Linus
    team: 1
cards:
  - text: Elvis
    by: Ada
  - text: Eiffel Tower
  - text: Marie Curie
  - text: Spaghetti
  - text: Moon landing
  - text: Sherlock Holmes
  - text: Volcano
  - text: Jazz
  - text: Penguin
  - text: Bicycle
  - text: Lighthouse
  - text: Origami
`
}
