package core

import "fmt"

// Move asks the piece PieceID of team TeamID to go to To.
// Validity is always judged against the current grid.
type Move struct {
	TeamID  int        `json:"team_id"`
	PieceID int        `json:"piece_id"`
	To      Coordinate `json:"to"`
}

func NewMove(teamID, pieceID, row, col int) Move {
	return Move{TeamID: teamID, PieceID: pieceID, To: NewCoordinate(row, col)}
}

func (m Move) String() string {
	return fmt.Sprintf("team %d piece %d -> %s", m.TeamID, m.PieceID, m.To)
}
