package entity

import "testing"

func TestTeamMemberUtilization(t *testing.T) {
	tests := []struct {
		name     string
		capacity Capacity
		want     float64
	}{
		{"half loaded", Capacity{Current: 3, Maximum: 6}, 0.5},
		{"idle", Capacity{Current: 0, Maximum: 6}, 0},
		{"full", Capacity{Current: 6, Maximum: 6}, 1},
		{"zero maximum counts as fully loaded", Capacity{Current: 0, Maximum: 0}, 1},
		{"negative maximum counts as fully loaded", Capacity{Current: 2, Maximum: -1}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := TeamMember{Capacity: tc.capacity}
			if got := m.Utilization(); got != tc.want {
				t.Errorf("Utilization() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTeamMemberAtCapacity(t *testing.T) {
	tests := []struct {
		capacity Capacity
		want     bool
	}{
		{Capacity{Current: 5, Maximum: 6}, false},
		{Capacity{Current: 6, Maximum: 6}, true},
		{Capacity{Current: 7, Maximum: 6}, true},
		{Capacity{Current: 0, Maximum: 0}, true},
	}

	for _, tc := range tests {
		m := TeamMember{Capacity: tc.capacity}
		if got := m.AtCapacity(); got != tc.want {
			t.Errorf("AtCapacity() with %+v = %v, want %v", tc.capacity, got, tc.want)
		}
	}
}
