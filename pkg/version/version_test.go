package version

import (
	"strings"
	"testing"
)

func TestGetFullVersion(t *testing.T) {
	origV, origC, origD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origV, origC, origD })

	Version, Commit, Date = "v1.2.3", "abc1234", "2026-01-02"

	if GetVersion() != "v1.2.3" || GetCommit() != "abc1234" || GetDate() != "2026-01-02" {
		t.Fatalf("getters = %s %s %s", GetVersion(), GetCommit(), GetDate())
	}
	full := GetFullVersion()
	for _, want := range []string{"v1.2.3", "commit: abc1234", "built: 2026-01-02"} {
		if !strings.Contains(full, want) {
			t.Errorf("GetFullVersion() = %q, missing %q", full, want)
		}
	}
}
