package render

import (
	"bytes"
	"testing"
)

func TestTableFallsBackToPlainForNonTerminals(t *testing.T) {
	var buf bytes.Buffer
	got := Table(&buf,
		[]string{"Name", "Count"},
		[][]string{{"alpha", "1"}, {"beta", "2"}},
		[]Alignment{AlignLeft, AlignRight},
	)

	want := "Name\tCount\nalpha\t1\nbeta\t2"
	if got != want {
		t.Fatalf("plain render = %q, want %q", got, want)
	}
}

func TestTablePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	got := Table(&buf,
		[]string{"A", "B", "C"},
		[][]string{{"only"}},
		nil,
	)

	want := "A\tB\tC\nonly"
	if got != want {
		t.Fatalf("plain render = %q, want %q", got, want)
	}
}
