package board

import "testing"

func perftPosition(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return p
}

func TestPerftStartPos(t *testing.T) {
	p := perftPosition(t, StartFEN)
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("perft depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftStartPosDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth 5 perft in short mode")
	}
	p := perftPosition(t, StartFEN)
	if got := Perft(p, 5); got != 4865609 {
		t.Errorf("perft depth 5: got %d want %d", got, 4865609)
	}
}

func TestPerftKiwipete(t *testing.T) {
	p := perftPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("kiwipete depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	p := perftPosition(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}
	for _, c := range cases {
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("position 3 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	p := perftPosition(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	}
	for _, c := range cases {
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("position 4 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	p := perftPosition(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
	}
	for _, c := range cases {
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("position 5 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition6(t *testing.T) {
	p := perftPosition(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 46},
		{2, 2079},
		{3, 89890},
	}
	for _, c := range cases {
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("position 6 depth %d: got %d want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftEnPassantPosition(t *testing.T) {
	p := perftPosition(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if got := Perft(p, 1); got != 5 {
		t.Errorf("ep depth 1: got %d want %d", got, 5)
	}
	if got := Perft(p, 2); got != 19 {
		t.Errorf("ep depth 2: got %d want %d", got, 19)
	}
}

func TestPerftPromotionPosition(t *testing.T) {
	p := perftPosition(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if got := Perft(p, 1); got != 11 {
		t.Errorf("promotion depth 1: got %d want %d", got, 11)
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := perftPosition(t, StartFEN)
	div := PerftDivide(p, 3)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if want := Perft(p, 3); sum != want {
		t.Errorf("sum of PerftDivide leaves: got %d want %d", sum, want)
	}
}

func BenchmarkPerftStartPosDepth4(b *testing.B) {
	p, err := FromFEN(StartFEN)
	if err != nil {
		b.Fatalf("FromFEN: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Perft(p, 4)
	}
}

func BenchmarkGenerateMovesStartPos(b *testing.B) {
	p, err := FromFEN(StartFEN)
	if err != nil {
		b.Fatalf("FromFEN: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.GenerateMovesInto(make([]Move, 0, 64))
	}
}
