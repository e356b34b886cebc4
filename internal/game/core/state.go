package core

// GameState is everything needed to judge and apply the next move
type GameState struct {
	Grid        *Grid
	Teams       []Team // Teams[i].ID == i+1
	CurrentTeam int    // ID of the team to move
	LastMove    *Move
}

// Team returns the team with the given ID, or nil
func (gs *GameState) Team(id int) *Team {
	if id < 1 || id > len(gs.Teams) {
		return nil
	}
	return &gs.Teams[id-1]
}

// Piece looks a piece up by team and ID, or returns nil
func (gs *GameState) Piece(teamID, pieceID int) *Piece {
	t := gs.Team(teamID)
	if t == nil {
		return nil
	}
	i := t.PieceIndex(pieceID)
	if i < 0 {
		return nil
	}
	return &t.Pieces[i]
}

// AllPieces returns a flat copy of every piece on the board, team by team
func (gs *GameState) AllPieces() []Piece {
	n := 0
	for i := range gs.Teams {
		n += len(gs.Teams[i].Pieces)
	}
	out := make([]Piece, 0, n)
	for i := range gs.Teams {
		out = append(out, gs.Teams[i].Pieces...)
	}
	return out
}

// TeamsWithPieces lists the IDs of teams that still have a piece
func (gs *GameState) TeamsWithPieces() []int {
	var ids []int
	for i := range gs.Teams {
		if gs.Teams[i].HasPieces() {
			ids = append(ids, gs.Teams[i].ID)
		}
	}
	return ids
}

// NextTeam returns the ID that follows CurrentTeam in turn order
func (gs *GameState) NextTeam() int {
	if len(gs.Teams) == 0 {
		return 0
	}
	return gs.CurrentTeam%len(gs.Teams) + 1
}

// Clone deep-copies the state so the copy shares nothing mutable with gs
func (gs *GameState) Clone() *GameState {
	out := &GameState{
		Grid:        gs.Grid.Clone(),
		Teams:       make([]Team, len(gs.Teams)),
		CurrentTeam: gs.CurrentTeam,
	}
	for i := range gs.Teams {
		out.Teams[i] = gs.Teams[i].Clone()
	}
	if gs.LastMove != nil {
		m := *gs.LastMove
		out.LastMove = &m
	}
	return out
}

// Snapshot is the transport-friendly view of a GameState
type Snapshot struct {
	Grid        [][]string `json:"grid"`
	Teams       []TeamView `json:"teams"`
	CurrentTeam int        `json:"current_team"`
	LastMove    *Move      `json:"last_move,omitempty"`
}

// TeamView is the transport-friendly view of a Team
type TeamView struct {
	ID     int        `json:"id"`
	Color  string     `json:"color"`
	Base   Coordinate `json:"base"`
	Flags  int        `json:"flags"`
	Pieces []string   `json:"pieces"`
}

// Snapshot builds the wire view using the cell encoding for the grid
func (gs *GameState) Snapshot() Snapshot {
	s := Snapshot{
		Grid:        gs.Grid.Encode(),
		Teams:       make([]TeamView, len(gs.Teams)),
		CurrentTeam: gs.CurrentTeam,
	}
	for i := range gs.Teams {
		t := &gs.Teams[i]
		view := TeamView{ID: t.ID, Color: t.Color, Base: t.Base, Flags: t.Flags, Pieces: make([]string, len(t.Pieces))}
		for j := range t.Pieces {
			view.Pieces[j] = PieceCell(t.ID, t.Pieces[j].ID).String()
		}
		s.Teams[i] = view
	}
	if gs.LastMove != nil {
		m := *gs.LastMove
		s.LastMove = &m
	}
	return s
}
