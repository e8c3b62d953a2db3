package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		print     func(p *Printer)
		wantOut   string
		wantErr   string
		wantEmpty bool
	}{
		{
			name:    "NoticeAlwaysShown",
			print:   func(p *Printer) { p.Noticef("%s is not a file", "dir") },
			wantOut: "dir is not a file",
		},
		{
			name:      "TraceHiddenWhenQuiet",
			print:     func(p *Printer) { p.Tracef("-> working on %s", "a.txt") },
			wantEmpty: true,
		},
		{
			name:    "TraceShownWhenVerbose",
			verbose: true,
			print:   func(p *Printer) { p.Tracef("-> working on %s", "a.txt") },
			wantOut: "-> working on a.txt",
		},
		{
			name:    "ErrorToErrStream",
			print:   func(p *Printer) { p.Errorf("Execution failed: %v", "boom") },
			wantErr: "Execution failed: boom",
		},
		{
			name:      "VerboseErrorHiddenWhenQuiet",
			print:     func(p *Printer) { p.VerboseErrorf("Clean failed: %v", "denied") },
			wantEmpty: true,
		},
		{
			name:    "VerboseErrorShownWhenVerbose",
			verbose: true,
			print:   func(p *Printer) { p.VerboseErrorf("Clean failed: %v", "denied") },
			wantErr: "Clean failed: denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			p := NewPrinter(&out, &errOut, tt.verbose)
			tt.print(p)

			if tt.wantEmpty {
				if out.Len() != 0 || errOut.Len() != 0 {
					t.Fatalf("expected no output, got out=%q err=%q", out.String(), errOut.String())
				}
				return
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Fatalf("out = %q, want it to contain %q", out.String(), tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(errOut.String(), tt.wantErr) {
				t.Fatalf("err = %q, want it to contain %q", errOut.String(), tt.wantErr)
			}
			if tt.wantOut == "" && out.Len() != 0 {
				t.Fatalf("unexpected stdout output %q", out.String())
			}
			if tt.wantErr == "" && errOut.Len() != 0 {
				t.Fatalf("unexpected stderr output %q", errOut.String())
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	p := Discard()
	p.Verbose = true
	p.Noticef("x")
	p.Tracef("y")
	p.Errorf("z")
}
