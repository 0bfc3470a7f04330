package diff

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/lipgloss"
    dmp "github.com/sergi/go-diff/diffmatchpatch"

    "flashdigest/internal/tui/util"
)

// DiffView compares two results word by word. Deletions render as [-text-]
// and insertions as {+text+} so the view stays readable without color.
type DiffView struct {
    title lipgloss.Style
    del   lipgloss.Style
    add   lipgloss.Style
    same  lipgloss.Style
}

func NewDiffView(p util.Palette) DiffView {
    return DiffView{
        title: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
        del:   lipgloss.NewStyle().Foreground(p.Danger).Strikethrough(true),
        add:   lipgloss.NewStyle().Foreground(p.Success).Underline(true),
        same:  lipgloss.NewStyle().Faint(true),
    }
}

// View renders the changes from before (history entry beforeIdx) to after
// (the latest output).
func (v DiffView) View(before, after string, beforeIdx, width int) string {
    var b strings.Builder
    b.WriteString(v.title.Render(fmt.Sprintf("Compare #%d -> latest", beforeIdx+1)) + "\n")
    if before == after {
        b.WriteString(v.same.Render("No changes"))
        return b.String()
    }
    var body strings.Builder
    for _, d := range Words(before, after) {
        switch d.Type {
        case dmp.DiffDelete:
            body.WriteString(v.del.Render("[-" + d.Text + "-]"))
        case dmp.DiffInsert:
            body.WriteString(v.add.Render("{+" + d.Text + "+}"))
        case dmp.DiffEqual:
            body.WriteString(v.same.Render(d.Text))
        }
    }
    out := body.String()
    if width > 0 {
        out = lipgloss.NewStyle().Width(width).Render(out)
    }
    b.WriteString(out)
    return b.String()
}

// Words diffs at word granularity by mapping each whitespace-separated token
// to a rune, the same trick diffmatchpatch uses for line mode. Token runes
// skip the surrogate block, which does not survive string conversion.
func Words(before, after string) []dmp.Diff {
    d := dmp.New()
    index := map[string]rune{}
    words := map[rune]string{}
    next := rune(1)
    encode := func(s string) string {
        var out []rune
        for _, tok := range splitKeepSpace(s) {
            r, ok := index[tok]
            if !ok {
                if next >= 0xD800 && next <= 0xDFFF {
                    next = 0xE000
                }
                r = next
                next++
                index[tok] = r
                words[r] = tok
            }
            out = append(out, r)
        }
        return string(out)
    }
    a, c := encode(before), encode(after)
    diffs := d.DiffCleanupSemantic(d.DiffMain(a, c, false))
    for i := range diffs {
        var sb strings.Builder
        for _, r := range diffs[i].Text {
            sb.WriteString(words[r])
        }
        diffs[i].Text = sb.String()
    }
    return diffs
}

// splitKeepSpace splits s into words, attaching trailing whitespace to each.
func splitKeepSpace(s string) []string {
    var out []string
    start := 0
    inSpace := false
    for i, r := range s {
        sp := r == ' ' || r == '\n' || r == '\t'
        if inSpace && !sp {
            out = append(out, s[start:i])
            start = i
        }
        inSpace = sp
    }
    if start < len(s) {
        out = append(out, s[start:])
    }
    return out
}
