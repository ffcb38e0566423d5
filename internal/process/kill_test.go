package process

import "testing"

// Real process groups are exercised by the browser shutdown path; these
// cases only cover pids that must never be signalled.
func TestKillProcessGroup_RefusedPIDs(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1} {
		if KillProcessGroup(pid) {
			t.Errorf("KillProcessGroup(%d) = true, want refusal", pid)
		}
	}
}

func TestKillProcessGroup_MissingPID(t *testing.T) {
	t.Parallel()

	if KillProcessGroup(999999999) {
		t.Error("KillProcessGroup() on a missing pid reported delivery")
	}
}
