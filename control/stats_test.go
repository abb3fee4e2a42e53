package control

import "testing"

func TestSnapshot(t *testing.T) {
	var s Stats
	s.Accepted.Add(3)
	s.Served.Add(2)
	s.ConnErrors.Add(1)

	snap := s.Snapshot()
	want := map[string]uint64{"accepted": 3, "served": 2, "conn_errors": 1}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s: got %d, want %d", k, snap[k], v)
		}
	}
}
