// Package wizard turns a YAML game setup into session creation input.
//
// A setup file looks like:
//
//	teams: ["Red", "Blue"]
//	turn_seconds: 45
//	players:
//	  - name: Ada
//	    team: 0
//	cards:
//	  - text: Elvis
//	    by: Ada
//	starter_pack: false
package wizard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bowl-game/bowl/internal/game"
)

// Input limits, counted in runes.
const (
	MaxTeamName   = 20
	MaxPlayerName = 24
	MaxCardText   = 80
)

// DefaultMinCards is the smallest deck a game can start with.
const DefaultMinCards = 10

// DefaultTeamNames are used for teams the setup leaves unnamed.
var DefaultTeamNames = [2]string{"Team A", "Team B"}

var (
	ErrTooFewCards      = errors.New("not enough cards")
	ErrTeamNameRequired = errors.New("team name required")
)

// Setup is the parsed setup file.
type Setup struct {
	Teams       []string      `yaml:"teams"`
	TurnSeconds int           `yaml:"turn_seconds"`
	Players     []PlayerEntry `yaml:"players"`
	Cards       []CardEntry   `yaml:"cards"`
	StarterPack bool          `yaml:"starter_pack"`
}

// PlayerEntry is one player line; Team is 0 or 1.
type PlayerEntry struct {
	Name string `yaml:"name"`
	Team int    `yaml:"team"`
}

// CardEntry is one card; By names the player who wrote it.
type CardEntry struct {
	Text string `yaml:"text"`
	By   string `yaml:"by"`
}

// Options are the project defaults applied when building input.
type Options struct {
	MinCards    int
	TurnSeconds int
	TeamNames   []string
}

// Parse decodes a setup document.
func Parse(data []byte) (*Setup, error) {
	var s Setup
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing setup: %w", err)
	}
	return &s, nil
}

// ReadFile reads and decodes a setup file.
func ReadFile(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading setup: %w", err)
	}
	return Parse(data)
}

// SanitizeTeamName trims name and caps it at MaxTeamName runes.
func SanitizeTeamName(name string) string { return clip(name, MaxTeamName) }

// SanitizePlayerName trims name and caps it at MaxPlayerName runes.
func SanitizePlayerName(name string) string { return clip(name, MaxPlayerName) }

// SanitizeCardText trims text and caps it at MaxCardText runes.
func SanitizeCardText(text string) string { return clip(text, MaxCardText) }

func clip(s string, limit int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > limit {
		s = strings.TrimSpace(string(r[:limit]))
	}
	return s
}

// ToInput validates the setup and builds the session input. Blank players and
// cards are dropped; ids for players and cards come from newID.
func (s *Setup) ToInput(opts Options, newID game.IDGenerator) (game.CreateSessionInput, error) {
	if newID == nil {
		newID = game.NewID
	}
	minCards := opts.MinCards
	if minCards <= 0 {
		minCards = DefaultMinCards
	}

	var input game.CreateSessionInput
	if len(s.Teams) > 2 {
		return input, fmt.Errorf("setup names %d teams, want 2", len(s.Teams))
	}
	for i := range input.TeamNames {
		name := DefaultTeamNames[i]
		if i < len(opts.TeamNames) && SanitizeTeamName(opts.TeamNames[i]) != "" {
			name = SanitizeTeamName(opts.TeamNames[i])
		}
		if i < len(s.Teams) {
			name = SanitizeTeamName(s.Teams[i])
			if name == "" {
				return input, fmt.Errorf("team %d: %w", i+1, ErrTeamNameRequired)
			}
		}
		input.TeamNames[i] = name
	}

	playerIDs := make(map[string]string)
	for i, p := range s.Players {
		name := SanitizePlayerName(p.Name)
		if name == "" {
			continue
		}
		if p.Team != 0 && p.Team != 1 {
			return input, fmt.Errorf("player %d (%s): team must be 0 or 1, got %d", i+1, name, p.Team)
		}
		id := newID()
		playerIDs[name] = id
		input.Players = append(input.Players, game.WizardPlayerSeed{ID: id, Name: name, TeamIndex: p.Team})
	}

	entries := append([]CardEntry{}, s.Cards...)
	if s.StarterPack {
		for _, text := range StarterCards {
			entries = append(entries, CardEntry{Text: text})
		}
	}
	for i, c := range entries {
		text := SanitizeCardText(c.Text)
		if text == "" {
			continue
		}
		card := game.WizardCardSeed{ID: newID(), Text: text}
		if by := SanitizePlayerName(c.By); by != "" {
			id, ok := playerIDs[by]
			if !ok {
				return input, fmt.Errorf("card %d: unknown player %q", i+1, by)
			}
			card.CreatedByPlayerID = id
		}
		input.Cards = append(input.Cards, card)
	}
	if len(input.Cards) < minCards {
		return input, fmt.Errorf("%w: have %d, need %d", ErrTooFewCards, len(input.Cards), minCards)
	}

	input.TurnSeconds = s.TurnSeconds
	if input.TurnSeconds <= 0 {
		input.TurnSeconds = opts.TurnSeconds
	}
	return input, nil
}
