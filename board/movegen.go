package board

// castling squares, expressed once via NewSquare so the h1=0 file
// convention only has to be reasoned about here, not re-derived at every
// call site.
var (
	whiteKingStart    = NewSquare('e', '1')
	whiteKingsideRook = NewSquare('h', '1')
	whiteQueenRook    = NewSquare('a', '1')
	whiteKingsideTo   = NewSquare('g', '1')
	whiteKRookTo      = NewSquare('f', '1')
	whiteQueensideTo  = NewSquare('c', '1')
	whiteQRookTo      = NewSquare('d', '1')
	whiteQEmptyExtra  = NewSquare('b', '1')

	blackKingStart    = NewSquare('e', '8')
	blackKingsideRook = NewSquare('h', '8')
	blackQueenRook    = NewSquare('a', '8')
	blackKingsideTo   = NewSquare('g', '8')
	blackKRookTo      = NewSquare('f', '8')
	blackQueensideTo  = NewSquare('c', '8')
	blackQRookTo      = NewSquare('d', '8')
	blackQEmptyExtra  = NewSquare('b', '8')
)

// GenerateMoves returns every legal move for the side to move.
func (p *Position) GenerateMoves() []Move {
	return p.GenerateMovesInto(make([]Move, 0, 64))
}

// GenerateMovesInto appends every legal move for the side to move into dst
// (truncated to length zero first) and returns the result, letting callers
// on a hot path (perft, search) reuse a buffer across calls.
func (p *Position) GenerateMovesInto(dst []Move) []Move {
	moves := dst[:0]
	us := p.sideToMove
	them := us.Other()

	ownOcc := p.byColor[us]
	oppOcc := p.byColor[them]
	allOcc := ownOcc | oppOcc

	cs := p.computeCheckState(us)

	moves = p.genPawnMoves(moves, us, them, allOcc, oppOcc, cs)
	if !cs.doubleCheck {
		moves = p.genLeaperOrSlider(moves, Knight, us, ownOcc, oppOcc, allOcc, cs, func(sq Square, _ Bitboard) Bitboard { return knightAttacks[sq] })
		moves = p.genLeaperOrSlider(moves, Bishop, us, ownOcc, oppOcc, allOcc, cs, func(sq Square, occ Bitboard) Bitboard { return bishopAttacks(sq, occ) })
		moves = p.genLeaperOrSlider(moves, Rook, us, ownOcc, oppOcc, allOcc, cs, func(sq Square, occ Bitboard) Bitboard { return rookAttacks(sq, occ) })
		moves = p.genLeaperOrSlider(moves, Queen, us, ownOcc, oppOcc, allOcc, cs, func(sq Square, occ Bitboard) Bitboard { return queenAttacks(sq, occ) })
	}
	moves = p.genKingMoves(moves, us, them, ownOcc, oppOcc, allOcc, cs)
	return moves
}

// genLeaperOrSlider handles every piece type whose destinations are "attack
// set minus own pieces, filtered by pin line and check mask" — knights,
// bishops, rooks, and queens all share this shape; only the attack-set
// function differs.
func (p *Position) genLeaperOrSlider(moves []Move, t PieceType, us Color, ownOcc, oppOcc, allOcc Bitboard, cs checkState, attacksFrom func(Square, Bitboard) Bitboard) []Move {
	pieces := p.byType[us][t]
	for pieces != 0 {
		from := pieces.PopLSB()
		piece := p.mailbox[from]
		targets := attacksFrom(from, allOcc&^squareBB(from)) &^ ownOcc
		if pin := cs.pinLine[from]; pin != 0 {
			targets &= pin
		}
		if cs.inCheck {
			targets &= cs.checkMask
		}
		for targets != 0 {
			to := targets.PopLSB()
			captured := p.mailbox[to]
			isCap := captured != NoPiece
			moves = append(moves, NewMove(from, to, piece, captured, NoPiece, isCap, false, false))
		}
	}
	return moves
}

func (p *Position) genPawnMoves(moves []Move, us, them Color, allOcc, oppOcc Bitboard, cs checkState) []Move {
	forward := 8
	startRank := 1
	promoRank := 7
	if us == Black {
		forward = -8
		startRank = 6
		promoRank = 0
	}

	pawns := p.byType[us][Pawn]
	for pawns != 0 {
		from := pawns.PopLSB()
		piece := p.mailbox[from]
		pin := cs.pinLine[from]

		legal := func(to Square) bool {
			toBB := squareBB(to)
			if pin != 0 && toBB&pin == 0 {
				return false
			}
			if cs.inCheck && toBB&cs.checkMask == 0 {
				return false
			}
			return true
		}

		one := Square(int(from) + forward)
		if one >= 0 && one < 64 && allOcc&squareBB(one) == 0 {
			if legal(one) {
				if one.Rank() == promoRank {
					moves = p.appendPromotions(moves, from, one, piece, NoPiece, false)
				} else {
					moves = append(moves, NewMove(from, one, piece, NoPiece, NoPiece, false, false, false))
				}
			}
			if from.Rank() == startRank {
				two := Square(int(from) + 2*forward)
				if allOcc&squareBB(two) == 0 && legal(two) {
					moves = append(moves, NewMove(from, two, piece, NoPiece, NoPiece, false, false, false))
				}
			}
		}

		caps := pawnAttacks[us][from]
		for capTargets := caps & oppOcc; capTargets != 0; {
			to := capTargets.PopLSB()
			if !legal(to) {
				continue
			}
			captured := p.mailbox[to]
			if to.Rank() == promoRank {
				moves = p.appendPromotions(moves, from, to, piece, captured, true)
			} else {
				moves = append(moves, NewMove(from, to, piece, captured, NoPiece, true, false, false))
			}
		}

		if p.epSquare != NoSquare && caps&squareBB(p.epSquare) != 0 {
			moves = p.maybeAppendEnPassant(moves, us, them, from, p.epSquare, piece, allOcc, cs, pin)
		}
	}
	return moves
}

func (p *Position) appendPromotions(moves []Move, from, to Square, piece, captured Piece, isCapture bool) []Move {
	us := piece.Color()
	for _, t := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		moves = append(moves, NewMove(from, to, piece, captured, MakePiece(us, t), isCapture, false, false))
	}
	return moves
}

// maybeAppendEnPassant runs the discovered-check dance the data model
// requires: splice the capturing pawn off its origin, the captured pawn off
// its square, and the capturer onto the en passant square, then ask whether
// the king would be attacked under that hypothetical occupancy — no other
// pin-mask shortcut catches the case where removing the captured pawn opens
// a rank the king was hiding behind.
func (p *Position) maybeAppendEnPassant(moves []Move, us, them Color, from, to Square, piece Piece, allOcc Bitboard, cs checkState, pin Bitboard) []Move {
	if cs.doubleCheck {
		return moves
	}
	toBB := squareBB(to)
	if pin != 0 && toBB&pin == 0 {
		return moves
	}

	capSq := Square(int(to) - 8)
	if us == Black {
		capSq = Square(int(to) + 8)
	}
	captured := p.mailbox[capSq]

	hypOcc := allOcc
	hypOcc &^= squareBB(from)
	hypOcc &^= squareBB(capSq)
	hypOcc |= toBB

	ksq := p.byType[us][King].LSB()
	if ksq == NoSquare {
		return moves
	}
	p.removePiece(capSq)
	attacked := p.isSquareAttackedWithOcc(ksq, them, hypOcc)
	p.placePiece(capSq, captured)
	if attacked {
		return moves
	}
	return append(moves, NewMove(from, to, piece, captured, NoPiece, true, false, true))
}

func (p *Position) genKingMoves(moves []Move, us, them Color, ownOcc, oppOcc, allOcc Bitboard, cs checkState) []Move {
	from := p.byType[us][King].LSB()
	if from == NoSquare {
		return moves
	}
	piece := p.mailbox[from]
	targets := kingAttacks[from] &^ ownOcc

	for targets != 0 {
		to := targets.PopLSB()
		captured := p.mailbox[to]
		occAfter := (allOcc &^ squareBB(from)) | squareBB(to)
		if p.isSquareAttackedWithOcc(to, them, occAfter) {
			continue
		}
		moves = append(moves, NewMove(from, to, piece, captured, NoPiece, captured != NoPiece, false, false))
	}

	if cs.inCheck {
		return moves
	}
	if us == White {
		moves = p.tryCastle(moves, us, them, whiteKingStart, whiteKingsideRook, whiteKingsideTo, allOcc, WhiteKingside, piece)
		moves = p.tryCastle(moves, us, them, whiteKingStart, whiteQueenRook, whiteQueensideTo, allOcc, WhiteQueenside, piece)
	} else {
		moves = p.tryCastle(moves, us, them, blackKingStart, blackKingsideRook, blackKingsideTo, allOcc, BlackKingside, piece)
		moves = p.tryCastle(moves, us, them, blackKingStart, blackQueenRook, blackQueensideTo, allOcc, BlackQueenside, piece)
	}
	return moves
}

// tryCastle checks castling legality for one side (kingside or queenside):
// the right must still be held, every square strictly between king and rook
// must be empty, and every square the king passes through — including its
// origin and destination — must not be attacked. The extra queenside square
// the rook passes but the king doesn't (b1/b8) only needs the emptiness
// check above, never the attack check, matching the data model's rule.
func (p *Position) tryCastle(moves []Move, us, them Color, kingFrom, rookFrom, kingTo Square, allOcc Bitboard, right CastleRights, piece Piece) []Move {
	if p.castleRights&right == 0 {
		return moves
	}
	if p.mailbox[rookFrom] != MakePiece(us, Rook) {
		return moves
	}
	if segmentBetweenExclusive(kingFrom, rookFrom)&allOcc != 0 {
		return moves
	}
	step := squareStep(kingFrom, kingTo)
	for sq := kingFrom; ; sq += step {
		if p.isSquareAttackedWithOcc(sq, them, allOcc) {
			return moves
		}
		if sq == kingTo {
			break
		}
	}
	return append(moves, NewMove(kingFrom, kingTo, piece, NoPiece, NoPiece, false, true, false))
}

// segmentBetweenExclusive returns the squares strictly between a and b along
// their shared rank (castling only ever calls this along a rank).
func segmentBetweenExclusive(a, b Square) Bitboard {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	var bb Bitboard
	for sq := lo + 1; sq < hi; sq++ {
		bb |= squareBB(sq)
	}
	return bb
}

func squareStep(from, to Square) Square {
	if to > from {
		return 1
	}
	return -1
}
