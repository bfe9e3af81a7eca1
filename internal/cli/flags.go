package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/solver"
	"github.com/spf13/pflag"
)

// encodingValue is a pflag.Value accepting the contiguity encodings and
// their short aliases.
type encodingValue struct {
	enc *domain.Encoding
}

var _ pflag.Value = encodingValue{}

func newEncodingValue(def domain.Encoding, p *domain.Encoding) encodingValue {
	*p = def
	return encodingValue{enc: p}
}

func (v encodingValue) String() string {
	if v.enc == nil {
		return ""
	}
	return string(*v.enc)
}

func (v encodingValue) Set(s string) error {
	enc, err := domain.ParseEncoding(s)
	if err != nil {
		return err
	}
	*v.enc = enc
	return nil
}

func (v encodingValue) Type() string { return "encoding" }

// solverValue is a pflag.Value restricted to the registered solver backends.
type solverValue struct {
	name *string
}

var _ pflag.Value = solverValue{}

func newSolverValue(def string, p *string) solverValue {
	*p = def
	return solverValue{name: p}
}

func (v solverValue) String() string {
	if v.name == nil {
		return ""
	}
	return *v.name
}

func (v solverValue) Set(s string) error {
	if !slices.Contains(solver.Names(), s) {
		return fmt.Errorf("unknown solver %q (want %s)", s, strings.Join(solver.Names(), "|"))
	}
	*v.name = s
	return nil
}

func (v solverValue) Type() string { return "solver" }

// addModelFlags registers --encoding and --solver with defaults from cfg.
func addModelFlags(fs *pflag.FlagSet, enc *domain.Encoding, name *string, a *App) {
	fs.Var(newEncodingValue(a.Config.Encoding, enc), "encoding",
		"Contiguity encoding ("+string(domain.EncodingWindowIndicator)+"|"+string(domain.EncodingWindowStart)+")")
	if name != nil {
		fs.Var(newSolverValue(a.Config.Solver, name), "solver",
			"Solver backend ("+strings.Join(solver.Names(), "|")+")")
	}
}
