package workspace

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DiffOp marks one line of a diff.
type DiffOp byte

const (
	DiffKeep   DiffOp = ' '
	DiffRemove DiffOp = '-'
	DiffAdd    DiffOp = '+'
)

// DiffLine is one line of a line diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// DiffResult compares the content on disk with the content about to be
// written.
type DiffResult struct {
	Path    string
	Lines   []DiffLine
	Changed bool
}

// Diff computes a longest-common-subsequence line diff of before and after.
func Diff(path, before, after string) *DiffResult {
	result := &DiffResult{Path: path, Changed: before != after}
	if !result.Changed {
		return result
	}

	a := splitLines(before)
	b := splitLines(after)

	// lcs[i][j] is the common subsequence length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			result.Lines = append(result.Lines, DiffLine{DiffKeep, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			result.Lines = append(result.Lines, DiffLine{DiffRemove, a[i]})
			i++
		default:
			result.Lines = append(result.Lines, DiffLine{DiffAdd, b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		result.Lines = append(result.Lines, DiffLine{DiffRemove, a[i]})
	}
	for ; j < len(b); j++ {
		result.Lines = append(result.Lines, DiffLine{DiffAdd, b[j]})
	}
	return result
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Stats returns the number of added and removed lines.
func (d *DiffResult) Stats() (added, removed int) {
	for _, line := range d.Lines {
		switch line.Op {
		case DiffAdd:
			added++
		case DiffRemove:
			removed++
		}
	}
	return added, removed
}

// Render writes the changed lines with context lines of surrounding
// unchanged text, grouped into hunks.
func (d *DiffResult) Render(w io.Writer, context int, noColor bool) {
	if !d.Changed {
		return
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	bold := color.New(color.Bold)
	if noColor {
		red.DisableColor()
		green.DisableColor()
		cyan.DisableColor()
		bold.DisableColor()
	}

	bold.Fprintf(w, "--- a/%s\n", d.Path)
	bold.Fprintf(w, "+++ b/%s\n", d.Path)

	oldLine, newLine := 1, 1
	lastShown := -2
	for idx, line := range d.Lines {
		if d.nearChange(idx, context) {
			if lastShown != idx-1 {
				cyan.Fprintf(w, "@@ -%d +%d @@\n", oldLine, newLine)
			}
			switch line.Op {
			case DiffRemove:
				red.Fprintf(w, "-%s\n", line.Text)
			case DiffAdd:
				green.Fprintf(w, "+%s\n", line.Text)
			default:
				fmt.Fprintf(w, " %s\n", line.Text)
			}
			lastShown = idx
		}

		if line.Op != DiffAdd {
			oldLine++
		}
		if line.Op != DiffRemove {
			newLine++
		}
	}
}

func (d *DiffResult) nearChange(idx, context int) bool {
	lo, hi := idx-context, idx+context
	if lo < 0 {
		lo = 0
	}
	if hi >= len(d.Lines) {
		hi = len(d.Lines) - 1
	}
	for k := lo; k <= hi; k++ {
		if d.Lines[k].Op != DiffKeep {
			return true
		}
	}
	return false
}
