package cmd

import (
	"testing"

	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/coreaot/coreaot/internal/translator"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestDumpIRSnapshot pins the text dumpIR output for a representative
// function against a recorded snapshot, the way fixture_test.go snapshots
// DWScript fixture output rather than asserting on hand-written strings.
func TestDumpIRSnapshot(t *testing.T) {
	source := `
		struct Point { x: int, y: int }

		fn distanceSquared(p: Point, q: Point): int {
			let dx: int = p.x - q.x;
			let dy: int = p.y - q.y;
			return dx * dx + dy * dy;
		}
	`
	p := parser.New(lexer.New(source))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	in := intern.New()
	tr := translator.New(in, types.NewContext())
	irProg, errs := tr.Translate(prog)
	if len(errs) > 0 {
		t.Fatalf("translation failed: %v", errs)
	}

	output := captureStdout(t, func() {
		dumpIR(irProg, in)
	})

	snaps.MatchSnapshot(t, output)
}
