package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/wildfunctions/libcalculus/pkg/store"
)

func sampleResults() []store.Result {
	return []store.Result{
		{Task: "show_sin", Kind: "latex", Formula: `\sin\left(z\right)`},
		{Task: "residue", Kind: "integrate", Formula: `\int_{0 + 1 \cdot e^{it}} \frac{1}{z} \, dz`, Im: 2 * math.Pi},
		{Task: "capped", Kind: "derivative", Formula: `\frac{d}{dz}\left(z\right)`, Re: math.NaN(), Im: math.NaN(), Err: "derivative did not converge"},
	}
}

func TestResolveFormat(t *testing.T) {
	if got := resolveFormat("latex", os.Stdout); got != "latex" {
		t.Errorf("explicit format rewritten to %q", got)
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := resolveFormat("auto", f); got != "json" {
		t.Errorf("auto on a file = %q, want json", got)
	}
}

func TestWriteResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResults(&buf, sampleResults(), "json"); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 3 {
		t.Fatalf("decoded %d results", len(decoded))
	}
	if decoded[2]["re"] != "NaN" || decoded[2]["error"] != "derivative did not converge" {
		t.Errorf("NaN result encoded as %v", decoded[2])
	}
	if decoded[1]["task"] != "residue" {
		t.Errorf("task = %v", decoded[1]["task"])
	}
}

func TestWriteResultsText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResults(&buf, sampleResults(), "text"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"show_sin", `\sin\left(z\right)`, "error: derivative did not converge", "(0+6.283185307179586i)"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteResultsLatex(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResults(&buf, sampleResults(), "latex"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`\documentclass{article}`, `show\_sin`, `\frac{1}{z} \, dz = 6.28319 i`, `\end{document}`} {
		if !strings.Contains(out, want) {
			t.Errorf("LaTeX output missing %q:\n%s", want, out)
		}
	}
}
