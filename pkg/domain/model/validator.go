package model

// Structural validators. These are intentionally shallow checks on the
// entity itself; referential integrity against a board (stage exists,
// tags exist) is enforced by the mutation layer at write time.

// ValidateBoard reports whether the board carries the minimum
// structure to be usable: id, name, owner, at least one stage and at
// least one member.
func ValidateBoard(b *Board) bool {
	if b == nil {
		return false
	}
	return b.ID != "" &&
		b.Name != "" &&
		b.Owner.ID != 0 &&
		len(b.Stages) > 0 &&
		len(b.Members) > 0
}

// ValidateCard reports whether the card carries the minimum structure
// to be usable: id, board, stage, non-empty title and a priority.
func ValidateCard(c *Card) bool {
	if c == nil {
		return false
	}
	return c.ID != "" &&
		c.BoardID != "" &&
		c.StageID != "" &&
		c.Title != "" &&
		c.Priority != ""
}
