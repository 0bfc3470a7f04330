package diff

import (
    "strconv"
    "strings"
    "testing"

    dmp "github.com/sergi/go-diff/diffmatchpatch"

    "flashdigest/internal/tui/util"
)

func TestWordDiffSnapshot(t *testing.T) {
    v := NewDiffView(util.MonoPalette())
    out := v.View("the cat sat", "the dog sat", 0, 0)
    if !strings.HasPrefix(out, "Compare #1 -> latest\n") {
        t.Fatalf("missing header: %q", out)
    }
    if !strings.Contains(out, "[-cat -]") || !strings.Contains(out, "{+dog +}") {
        t.Fatalf("expected word markers, got %q", out)
    }
}

func TestIdenticalInputs(t *testing.T) {
    out := NewDiffView(util.MonoPalette()).View("same", "same", 2, 40)
    if !strings.Contains(out, "No changes") || !strings.Contains(out, "#3") {
        t.Fatalf("unexpected output %q", out)
    }
}

func TestWordsRebuildsText(t *testing.T) {
    before, after := "alpha beta gamma", "alpha gamma delta"
    var gotBefore, gotAfter strings.Builder
    for _, d := range Words(before, after) {
        if d.Type != dmp.DiffInsert { gotBefore.WriteString(d.Text) }
        if d.Type != dmp.DiffDelete { gotAfter.WriteString(d.Text) }
    }
    if gotBefore.String() != before || gotAfter.String() != after {
        t.Fatalf("diff does not reconstruct inputs: %q / %q", gotBefore.String(), gotAfter.String())
    }
}

func TestWordsManyUniqueTokens(t *testing.T) {
    var b strings.Builder
    for i := 0; i < 60000; i++ {
        b.WriteString("w")
        b.WriteString(strconv.Itoa(i))
        b.WriteString(" ")
    }
    before := b.String()
    var deleted, inserted strings.Builder
    for _, d := range Words(before, "changed") {
        switch d.Type {
        case dmp.DiffDelete, dmp.DiffEqual:
            deleted.WriteString(d.Text)
        }
        switch d.Type {
        case dmp.DiffInsert, dmp.DiffEqual:
            inserted.WriteString(d.Text)
        }
    }
    if deleted.String() != before { t.Fatalf("before text not rebuilt (%d of %d bytes)", deleted.Len(), len(before)) }
    if inserted.String() != "changed" { t.Fatalf("after text = %q", inserted.String()) }
}
