package proxy

import (
	"context"
	"testing"

	"github.com/masmgr/git-chdiff/internal/viewer"
	"pgregory.net/rapid"
)

func TestRapidRun_LaunchesSlotsTwoAndFive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		argv := rapid.SliceOfN(rapid.String(), 6, 12).Draw(t, "argv")

		recorder := &viewer.Recorder{}
		if err := Run(context.Background(), argv, recorder); err != nil {
			t.Fatalf("Run(%q): %v", argv, err)
		}

		if len(recorder.Launches) != 1 {
			t.Fatalf("launches = %d, want 1", len(recorder.Launches))
		}
		got := recorder.Launches[0]
		if !got.Wait || got.Left != argv[2] || got.Right != argv[5] {
			t.Fatalf("launch = %+v for argv %q", got, argv)
		}
	})
}

func TestRapidParseArgs_ShortVectorsRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		argv := rapid.SliceOfN(rapid.String(), 0, 5).Draw(t, "argv")
		if _, err := ParseArgs(argv); err == nil {
			t.Fatalf("ParseArgs(%q) accepted a short vector", argv)
		}
	})
}
