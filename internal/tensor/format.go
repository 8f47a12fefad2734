package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString renders t with precision digits after the decimal point.
//
// Layout by rank:
//   - 0: the single number
//   - 1: one bracketed row, e.g. "[1.00, 2.00]"
//   - 2: one bracketed row per value of the first index
//   - 3+: one block per value of the leading index, headed "label=k:", holding
//     the rank-(n-1) rendering indented by two spaces
//
// All numbers of a tensor are right-aligned to the widest one. The output
// depends only on (t, precision). Negative precision is treated as 0.
func ToString(t *Tensor, precision int) string {
	if precision < 0 {
		precision = 0
	}

	cells := make([]string, len(t.data))
	width := 0
	for i, v := range t.data {
		cells[i] = formatNumber(v, precision)
		width = max(width, len(cells[i]))
	}
	for i, c := range cells {
		if pad := width - len(c); pad > 0 {
			cells[i] = strings.Repeat(" ", pad) + c
		}
	}

	if len(t.shape) == 0 {
		return cells[0]
	}
	return strings.Join(formatAxis(t, cells, 0, 0), "\n")
}

// Format is ToString as a method.
func (t *Tensor) Format(precision int) string {
	return ToString(t, precision)
}

// formatAxis renders the sub-tensor starting at base whose leading axis is dim.
func formatAxis(t *Tensor, cells []string, dim, base int) []string {
	remaining := len(t.shape) - dim
	switch {
	case remaining == 1:
		row := cells[base : base+t.shape[dim]]
		return []string{"[" + strings.Join(row, ", ") + "]"}
	case remaining == 2:
		lines := make([]string, 0, t.shape[dim])
		for k := 0; k < t.shape[dim]; k++ {
			lines = append(lines, formatAxis(t, cells, dim+1, base+k*t.stride[dim])...)
		}
		return lines
	default:
		var lines []string
		for k := 0; k < t.shape[dim]; k++ {
			lines = append(lines, fmt.Sprintf("%s=%d:", t.indices[dim], k))
			for _, l := range formatAxis(t, cells, dim+1, base+k*t.stride[dim]) {
				lines = append(lines, "  "+l)
			}
		}
		return lines
	}
}

func formatNumber(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
