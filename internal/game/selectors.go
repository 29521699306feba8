package game

// CurrentCard returns the card in hand, if any.
func CurrentCard(s Session) (Card, bool) {
	if s.Turn == nil || s.Turn.CurrentCardID == "" {
		return Card{}, false
	}
	return CardByID(s, s.Turn.CurrentCardID)
}

// IsTurnRunning reports whether the turn clock is running.
func IsTurnRunning(s Session) bool {
	return s.Turn != nil && s.Turn.IsRunning
}

// CanUndo reports whether the turn has a resolved card to revert.
func CanUndo(s Session) bool {
	return s.Turn != nil && len(s.Turn.History) > 0
}

// Teams returns the two teams; missing teams are zero values.
func Teams(s Session) (teamA, teamB Team) {
	if len(s.Teams) > 0 {
		teamA = s.Teams[0]
	}
	if len(s.Teams) > 1 {
		teamB = s.Teams[1]
	}
	return teamA, teamB
}

// TeamByID looks a team up by id.
func TeamByID(s Session, teamID string) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == teamID {
			return t, true
		}
	}
	return Team{}, false
}
