package features

import "testing"

func TestResolveProcessorGHz(t *testing.T) {
	tests := []struct {
		name      string
		processor string
		expected  float64
	}{
		{"exact table entry", "A17 Bionic", 3.78},
		{"embedded in longer name", "Apple A17 Bionic Chip", 3.78},
		{"case insensitive", "apple a16 bionic", 3.46},
		{"snapdragon gen 3", "Snapdragon 8 Gen 3", 3.3},
		{"snapdragon plus variant", "Qualcomm Snapdragon 8+ Gen 1", 3.2},
		{"mediatek", "MediaTek Dimensity 9300", 3.25},
		{"exynos", "Exynos 2400 for Galaxy", 3.2},
		{"tensor specific before generic", "Google Tensor G3", 2.91},
		{"tensor generic", "Google Tensor", 2.8},
		{"unknown chip", "Unknown Chip X", 2.0},
		{"empty string", "", 2.0},
		{"gibberish", "zzzz 9000", 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveProcessorGHz(tt.processor)
			if got != tt.expected {
				t.Errorf("ResolveProcessorGHz(%q) = %v, want %v", tt.processor, got, tt.expected)
			}
		})
	}
}

// First-match-wins: "A17 Pro" precedes "A17 Bionic" in the table, so a name
// containing both must resolve via the earlier entry.
func TestResolveFirstMatchWins(t *testing.T) {
	got := ResolveProcessorGHz("A17 Pro Bionic hybrid")
	if got != 3.78 {
		t.Errorf("ResolveProcessorGHz order sensitivity: got %v, want 3.78", got)
	}

	// "Google Tensor G2" must not be shadowed by the generic "Google Tensor"
	// entry that follows it.
	got = ResolveProcessorGHz("Pixel with Google Tensor G2")
	if got != 2.85 {
		t.Errorf("specific entry shadowed by generic: got %v, want 2.85", got)
	}
}
