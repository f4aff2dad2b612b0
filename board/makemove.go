package board

// castleRookSquares returns the rook's home and destination square for the
// castling move a king of color us makes by landing on kingTo. Rook
// movement isn't stored on the Move itself — it's a fixed function of color
// and destination file, so unmake can recompute it exactly as make did.
func castleRookSquares(us Color, kingTo Square) (rookFrom, rookTo Square) {
	if us == White {
		if kingTo == whiteKingsideTo {
			return whiteKingsideRook, whiteKRookTo
		}
		return whiteQueenRook, whiteQRookTo
	}
	if kingTo == blackKingsideTo {
		return blackKingsideRook, blackKRookTo
	}
	return blackQueenRook, blackQRookTo
}

// MakeMove applies m, which must be one GenerateMoves produced for the
// current position — passing any other move is a programming error (see
// DESIGN.md and the data model's error-handling contract), not something
// this method detects at runtime outside of debug assertions.
func (p *Position) MakeMove(m Move) {
	p.saveStack = append(p.saveStack, State{
		SideToMove:     p.sideToMove,
		EPSquare:       p.epSquare,
		HalfmoveClock:  p.halfmoveClock,
		FullmoveNumber: p.fullmoveNumber,
		CastleRights:   p.castleRights,
	})

	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := m.Piece()
	promoted := m.Promoted()

	p.epSquare = NoSquare

	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		p.removePiece(capSq)
	} else if m.IsCapture() {
		p.removePiece(to)
	}

	p.removePiece(from)
	if promoted != NoPiece {
		p.placePiece(to, promoted)
	} else {
		p.placePiece(to, piece)
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(us, to)
		p.movePieceRaw(rookFrom, rookTo)
	}

	p.castleRights &^= castleRightsLost(us, piece.Type(), from, m.Captured(), to)

	if piece.Type() == Pawn {
		fromRank, toRank := from.Rank(), to.Rank()
		if toRank-fromRank == 2 || fromRank-toRank == 2 {
			mid := (from + to) / 2
			p.epSquare = mid
		}
	}

	if piece.Type() == Pawn || m.IsCapture() {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}
	p.sideToMove = them

	if AssertionsEnabled {
		assertConsistent(p)
		assertKingNotAttacked(p, us)
	}
}

// castleRightsLost computes which castling rights a move made by us,
// moving pieceType from `from` and possibly capturing on `to`, revokes:
// the mover's own king or rook leaving its home square, or a rook being
// captured on its home square.
func castleRightsLost(us Color, pieceType PieceType, from Square, captured Piece, to Square) CastleRights {
	var lost CastleRights
	switch pieceType {
	case King:
		if us == White {
			lost |= WhiteKingside | WhiteQueenside
		} else {
			lost |= BlackKingside | BlackQueenside
		}
	case Rook:
		switch from {
		case whiteKingsideRook:
			lost |= WhiteKingside
		case whiteQueenRook:
			lost |= WhiteQueenside
		case blackKingsideRook:
			lost |= BlackKingside
		case blackQueenRook:
			lost |= BlackQueenside
		}
	}
	if captured.Type() == Rook {
		switch to {
		case whiteKingsideRook:
			lost |= WhiteKingside
		case whiteQueenRook:
			lost |= WhiteQueenside
		case blackKingsideRook:
			lost |= BlackKingside
		case blackQueenRook:
			lost |= BlackQueenside
		}
	}
	return lost
}

// UnmakeMove reverses the most recent MakeMove; m must be that same move.
func (p *Position) UnmakeMove(m Move) {
	n := len(p.saveStack)
	st := p.saveStack[n-1]
	p.saveStack = p.saveStack[:n-1]

	us := st.SideToMove
	from, to := m.From(), m.To()

	p.removePiece(to)
	p.placePiece(from, m.Piece())

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(us, to)
		p.movePieceRaw(rookTo, rookFrom)
	}

	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		p.placePiece(capSq, m.Captured())
	} else if m.IsCapture() {
		p.placePiece(to, m.Captured())
	}

	p.sideToMove = st.SideToMove
	p.epSquare = st.EPSquare
	p.halfmoveClock = st.HalfmoveClock
	p.fullmoveNumber = st.FullmoveNumber
	p.castleRights = st.CastleRights
}
