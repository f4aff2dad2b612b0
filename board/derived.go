package board

import (
	"math/bits"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Direction tables in tables.go walk outward from each square with a fixed
// per-step delta; whether the resulting bitboard's squares increase or
// decrease in raw index is therefore fixed per direction slot, not
// per-square. These two tables record that sign so pin/check scanning can
// find the *nearest* blocker along a ray without re-deriving it every call.
var rookDirIncreasing = [4]bool{true, false, false, true}   // N, S, E, W
var bishopDirIncreasing = [4]bool{true, true, false, false} // NW, NE, SW, SE

func nearestInDirection(bb Bitboard, increasing bool) Square {
	if increasing {
		return bb.LSB()
	}
	return Square(63 - bits.LeadingZeros64(uint64(bb)))
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by,
// under the position's current occupancy.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.isSquareAttackedWithOcc(sq, by, p.Occupancy())
}

func (p *Position) isSquareAttackedWithOcc(sq Square, by Color, occ Bitboard) bool {
	// Slider attacks are computed outward from sq, so sq's own bit must not
	// be in the occupancy handed to rookAttacks/bishopAttacks.
	occ &^= squareBB(sq)
	if pawnAttacks[by.Other()][sq]&p.byType[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&p.byType[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&p.byType[by][King] != 0 {
		return true
	}
	if rq := p.byType[by][Rook] | p.byType[by][Queen]; rq != 0 && rookAttacks(sq, occ)&rq != 0 {
		return true
	}
	if bq := p.byType[by][Bishop] | p.byType[by][Queen]; bq != 0 && bishopAttacks(sq, occ)&bq != 0 {
		return true
	}
	return false
}

// InCheck reports whether c's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	ksq := p.byType[c][King].LSB()
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, c.Other())
}

// checkState is the derived-state engine's output for the side to move:
// whether it is in check, whether it is in double check (only the king may
// move), the set of squares a non-king move must land on to resolve a
// single check, and, per square, the ray a pinned piece on that square is
// still allowed to move along.
type checkState struct {
	inCheck     bool
	doubleCheck bool
	checkMask   Bitboard
	pinLine     [64]Bitboard
}

// computeCheckState recomputes check_mask, pin_mask, and double_check for
// side. Sliders are queried with the king's own bit cleared from occupancy
// first, so a checking or pinning ray isn't blocked by the square it is
// itself attacking.
func (p *Position) computeCheckState(side Color) checkState {
	var cs checkState

	us, them := side, side.Other()
	ksq := p.byType[us][King].LSB()
	if ksq == NoSquare {
		cs.checkMask = ^Bitboard(0)
		return cs
	}
	occ := p.Occupancy()
	occNoKing := occ &^ squareBB(ksq)

	var checkers Bitboard
	checkers |= pawnAttacks[us][ksq] & p.byType[them][Pawn]
	checkers |= knightAttacks[ksq] & p.byType[them][Knight]
	checkers |= bishopAttacks(ksq, occNoKing) & (p.byType[them][Bishop] | p.byType[them][Queen])
	checkers |= rookAttacks(ksq, occNoKing) & (p.byType[them][Rook] | p.byType[them][Queen])

	cs.inCheck = checkers != 0
	cs.doubleCheck = cs.inCheck && checkers&(checkers-1) != 0

	if cs.inCheck && !cs.doubleCheck {
		c := checkers.LSB()
		switch p.mailbox[c].Type() {
		case Rook, Bishop, Queen:
			cs.checkMask = segmentTo(ksq, c)
		default: // knight or pawn: only capturing the checker resolves it
			cs.checkMask = squareBB(c)
		}
	} else if !cs.inCheck {
		cs.checkMask = ^Bitboard(0)
	}

	for d := 0; d < 4; d++ {
		full := rookRayDir[ksq][d]
		blockers := full & occ
		if blockers == 0 {
			continue
		}
		first := nearestInDirection(blockers, rookDirIncreasing[d])
		if p.byColor[us]&squareBB(first) == 0 {
			continue
		}
		beyond := rookRayDir[first][d] & occ
		if beyond == 0 {
			continue
		}
		next := nearestInDirection(beyond, rookDirIncreasing[d])
		pc := p.mailbox[next]
		if pc.Color() == them && (pc.Type() == Rook || pc.Type() == Queen) {
			cs.pinLine[first] = segmentTo(ksq, next)
		}
	}
	for d := 0; d < 4; d++ {
		full := bishopRayDir[ksq][d]
		blockers := full & occ
		if blockers == 0 {
			continue
		}
		first := nearestInDirection(blockers, bishopDirIncreasing[d])
		if p.byColor[us]&squareBB(first) == 0 {
			continue
		}
		beyond := bishopRayDir[first][d] & occ
		if beyond == 0 {
			continue
		}
		next := nearestInDirection(beyond, bishopDirIncreasing[d])
		pc := p.mailbox[next]
		if pc.Color() == them && (pc.Type() == Bishop || pc.Type() == Queen) {
			cs.pinLine[first] = segmentTo(ksq, next)
		}
	}

	return cs
}

// PinnedSquares exposes the pin_mask derived state as the map the data
// model describes, for inspection and tests. The move generator itself
// uses the allocation-free [64]Bitboard array inside checkState.
func (p *Position) PinnedSquares() map[Square]Bitboard {
	cs := p.computeCheckState(p.sideToMove)
	out := make(map[Square]Bitboard)
	for sq := Square(0); sq < 64; sq++ {
		if cs.pinLine[sq] != 0 {
			out[sq] = cs.pinLine[sq]
		}
	}
	return out
}

// PinnedSquaresList returns the same squares as PinnedSquares, sorted, for
// callers that want deterministic iteration order (e.g. table-driven
// tests).
func (p *Position) PinnedSquaresList() []Square {
	pinned := p.PinnedSquares()
	squares := maps.Keys(pinned)
	slices.Sort(squares)
	return squares
}
