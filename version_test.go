package quorum

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if !strings.HasPrefix(Version(), "v0.1.0") {
		t.Fatalf("unexpected version: %s", Version())
	}

	GitCommit = "deadbeef"
	defer func() { GitCommit = "" }()
	if got := Version(); !strings.HasSuffix(got, " deadbeef") {
		t.Fatalf("git commit not included: %s", got)
	}
}
