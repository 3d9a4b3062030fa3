package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wildfunctions/libcalculus/pkg/job"
	"github.com/wildfunctions/libcalculus/pkg/latex"
	"github.com/wildfunctions/libcalculus/pkg/store"
)

// jsonResult replaces the value with strings so NaN and Inf survive
// encoding.
type jsonResult struct {
	store.Result
	Re string `json:"re"`
	Im string `json:"im"`
}

func formatFloat(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprint(x)
	}
	return fmt.Sprintf("%.17g", x)
}

func writeResultsJSON(w io.Writer, results []store.Result) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{Result: r, Re: formatFloat(r.Re), Im: formatFloat(r.Im)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeResultsLatex writes a compilable document with one display per task.
func writeResultsLatex(w io.Writer, results []store.Result) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\begin{document}`)
	for _, r := range results {
		fmt.Fprintf(w, "\\subsection*{%s (%s)}\n", strings.ReplaceAll(r.Task, "_", `\_`), r.Kind)
		fmt.Fprintln(w, `\[`)
		if r.Kind == job.KindLatex || r.Err != "" {
			fmt.Fprintf(w, "  %s\n", r.Formula)
		} else {
			fmt.Fprintf(w, "  %s = %s\n", r.Formula, latex.FmtConst(r.Value(), false))
		}
		fmt.Fprintln(w, `\]`)
		if r.Err != "" {
			fmt.Fprintf(w, "\\noindent Error: \\verb|%s|\n", r.Err)
		}
	}
	fmt.Fprintln(w, `\end{document}`)
}
