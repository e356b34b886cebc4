package core

// SpectatorTeamID is handed to observers; it never owns pieces
const SpectatorTeamID = 0

// Team is one side of the game
type Team struct {
	ID     int
	Color  string
	Base   Coordinate
	Flags  int
	Pieces []Piece
}

func (t *Team) HasPieces() bool { return len(t.Pieces) > 0 }

// IsEliminated is true once the team has neither pieces nor flags
func (t *Team) IsEliminated() bool { return len(t.Pieces) == 0 && t.Flags == 0 }

func (t *Team) Orientation() Orientation { return OrientationFor(t.ID) }

// PieceIndex returns the roster index of pieceID, or -1
func (t *Team) PieceIndex(pieceID int) int {
	for i := range t.Pieces {
		if t.Pieces[i].ID == pieceID {
			return i
		}
	}
	return -1
}

// RemovePiece drops pieceID from the roster. Returns false if absent.
func (t *Team) RemovePiece(pieceID int) bool {
	i := t.PieceIndex(pieceID)
	if i < 0 {
		return false
	}
	t.Pieces = append(t.Pieces[:i], t.Pieces[i+1:]...)
	return true
}

// Clone copies the team including its roster
func (t *Team) Clone() Team {
	out := *t
	out.Pieces = make([]Piece, len(t.Pieces))
	copy(out.Pieces, t.Pieces)
	return out
}
