package ilp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteLP renders m and obj in CPLEX LP text format. Variable and row names
// are rewritten into legal LP identifiers and made unique, so models whose
// names carry operators or spaces still export cleanly.
func WriteLP(w io.Writer, m *Model, obj Objective) error {
	bw := bufio.NewWriter(w)
	varNames := newLPNamer()
	vars := make([]string, len(m.vars))
	for i, v := range m.vars {
		vars[i] = varNames.unique(v.Name)
	}
	rowNames := newLPNamer()
	rowNames.reserve("obj")

	if obj.Sense == Maximize {
		bw.WriteString("Maximize\n")
	} else {
		bw.WriteString("Minimize\n")
	}
	bw.WriteString(" obj:")
	if obj.Trivial() {
		writeTerms(bw, vars, nil)
	} else {
		writeTerms(bw, vars, obj.Terms)
	}
	bw.WriteString("\nSubject To\n")

	for _, c := range m.constraints {
		fmt.Fprintf(bw, " %s:", rowNames.unique(c.name))
		writeTerms(bw, vars, c.terms)
		op := "="
		switch c.sense {
		case AtMost:
			op = "<="
		case AtLeast:
			op = ">="
		}
		fmt.Fprintf(bw, " %s %s\n", op, formatCoef(c.rhs))
	}

	bw.WriteString("Bounds\n")
	for i, v := range m.vars {
		if v.Kind == Continuous {
			fmt.Fprintf(bw, " %s <= %s <= %s\n", formatCoef(v.Lower), vars[i], formatCoef(v.Upper))
		}
	}

	var binaries []string
	for i, v := range m.vars {
		if v.Kind == Binary {
			binaries = append(binaries, vars[i])
		}
	}
	if len(binaries) > 0 {
		bw.WriteString("Binary\n")
		for _, name := range binaries {
			bw.WriteString(" " + name + "\n")
		}
	}
	bw.WriteString("End\n")
	return bw.Flush()
}

// writeTerms writes a linear expression. An empty expression is written as
// "0 <first variable>", the LP way to spell a zero row.
func writeTerms(bw *bufio.Writer, vars []string, terms []Term) {
	if len(terms) == 0 {
		first := "x1"
		if len(vars) > 0 {
			first = vars[0]
		}
		bw.WriteString(" 0 " + first)
		return
	}
	for i, t := range terms {
		coef := t.Coef
		sign := "+"
		if coef < 0 {
			sign = "-"
			coef = -coef
		}
		if i == 0 && sign == "+" {
			fmt.Fprintf(bw, " %s %s", formatCoef(coef), vars[t.Var])
			continue
		}
		fmt.Fprintf(bw, " %s %s %s", sign, formatCoef(coef), vars[t.Var])
	}
}

func formatCoef(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// lpNamer hands out legal, distinct LP identifiers.
type lpNamer struct {
	used map[string]bool
}

func newLPNamer() *lpNamer {
	return &lpNamer{used: make(map[string]bool)}
}

func (n *lpNamer) reserve(name string) { n.used[name] = true }

// unique sanitizes name and appends _2, _3, ... until it is unused.
func (n *lpNamer) unique(name string) string {
	base := LPName(name)
	out := base
	for i := 2; n.used[out]; i++ {
		out = base + "_" + strconv.Itoa(i)
	}
	n.used[out] = true
	return out
}

// LPName maps name onto letters, digits, '_' and '.', which every LP reader
// accepts. Names that a reader could take for a number (a leading digit or
// period, or "e" followed by a digit) get an "r_" prefix.
func LPName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "r_"
	}
	numeric := func(c byte) bool { return c >= '0' && c <= '9' }
	switch c := out[0]; {
	case numeric(c), c == '.':
		return "r_" + out
	case (c == 'e' || c == 'E') && (len(out) == 1 || numeric(out[1])):
		return "r_" + out
	}
	return out
}
