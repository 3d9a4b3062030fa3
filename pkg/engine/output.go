package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Point is a complex number in a JSON-friendly form.
type Point struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

func point(z complex128) Point {
	return Point{Re: real(z), Im: imag(z)}
}

func (p Point) String() string {
	return fmt.Sprintf("%.6g%+.6gi", p.Re, p.Im)
}

// Mismatch records one sample where the function disagreed with its
// reference.
type Mismatch struct {
	At   Point `json:"at"`
	Got  Point `json:"got"`
	Want Point `json:"want"`
}

// FunctionResult summarizes the checks on one generated function.
type FunctionResult struct {
	Index       int        `json:"index"`
	Ops         int        `json:"ops"`
	Formula     string     `json:"formula"`
	Checked     int        `json:"checked"`
	Tries       int        `json:"tries"`
	Regenerated int        `json:"regenerated,omitempty"`
	Mismatches  []Mismatch `json:"mismatches,omitempty"`
	Failed      bool       `json:"failed"`
	Skipped     bool       `json:"skipped,omitempty"`
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	Config    Config           `json:"config"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Samples   int              `json:"samples"`
	Failures  []FunctionResult `json:"failures,omitempty"`
	Results   []FunctionResult `json:"results,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Elapsed   string           `json:"elapsed"`
}

// WriteFailure writes a single failing function.
func WriteFailure(w io.Writer, r FunctionResult) {
	fmt.Fprintf(w, "  #%d (%d ops): %s\n", r.Index, r.Ops, r.Formula)
	for _, m := range r.Mismatches {
		fmt.Fprintf(w, "      at %s: %s vs reference %s\n", m.At, m.Got, m.Want)
	}
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	if len(r.Failures) > 0 {
		fmt.Fprintln(w, "\n--- Failures ---")
		for _, f := range r.Failures {
			WriteFailure(w, f)
		}
	}
	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	fmt.Fprintf(w, "Pool:      %s\n", r.Config.Pool)
	fmt.Fprintf(w, "Seed:      %d\n", r.Config.Seed)
	fmt.Fprintf(w, "Functions: %d\n", r.Config.Functions)
	fmt.Fprintf(w, "Passed:    %d\n", r.Passed)
	fmt.Fprintf(w, "Failed:    %d\n", r.Failed)
	fmt.Fprintf(w, "Skipped:   %d\n", r.Skipped)
	fmt.Fprintf(w, "Samples:   %d\n", r.Samples)
	fmt.Fprintf(w, "Elapsed:   %s\n", r.Elapsed)
	fmt.Fprintln(w, "==================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes underscores for LaTeX text mode.
func latexEscape(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

// WriteLatexReport writes a compilable LaTeX document listing the failing
// functions with the samples they were caught at.
func WriteLatexReport(w io.Writer, r FinalReport) {
	cfg := r.Config

	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintf(w, "\\title{Value check --- Pool: \\texttt{%s}}\n", latexEscape(cfg.Pool))
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Functions: %d, Values: %d, Max ops: %d, Bound: %g, Tolerance: %g, Seed: %d\\\\\n",
		cfg.Functions, cfg.Values, cfg.MaxOps, cfg.Bound, cfg.Tolerance, cfg.Seed)
	fmt.Fprintf(w, "Passed: %d, Failed: %d, Skipped: %d (%s)\n\n", r.Passed, r.Failed, r.Skipped, r.Elapsed)

	for _, f := range r.Failures {
		fmt.Fprintf(w, "\\subsection*{Function \\#%d --- %d ops, %d of %d values wrong}\n",
			f.Index, f.Ops, len(f.Mismatches), f.Checked)
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  %s\n", f.Formula)
		fmt.Fprintln(w, `\]`)
		for _, m := range f.Mismatches {
			fmt.Fprintf(w, "\\noindent At \\verb|%s|: \\verb|%s| vs reference \\verb|%s|\\\\\n", m.At, m.Got, m.Want)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, `\end{document}`)
}
