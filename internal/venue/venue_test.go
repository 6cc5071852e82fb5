package venue

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Film Forum", "Film Forum", true},
		{"film forum", "Film Forum", true},
		{"FILM FORUM", "Film Forum", true},
		{"Metrograph", "Metrograph", true},
		{"IFC Center", "IFC Center", true},
		{"Anthology Film Archives", "Anthology Film Archives", true},
		// Substring containment.
		{"Now playing at Metrograph (Ludlow St)", "Metrograph", true},
		{"ifc center, theater 2", "IFC Center", true},
		// No whitelist name contained.
		{"Museum of the Moving Image", "", false},
		{"BAM Rose Cinemas", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Canonical(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// A string containing more than one whitelist name must resolve to the first
// whitelist entry in declared order, deterministically.
func TestCanonicalPriorityOrder(t *testing.T) {
	got, ok := Canonical("Metrograph / Film Forum double bill")
	if !ok || got != "Film Forum" {
		t.Errorf("Canonical with two venue names = (%q, %v), want (%q, true)", got, ok, "Film Forum")
	}
}
