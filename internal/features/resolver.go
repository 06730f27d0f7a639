// Package features turns raw mobile specification fields into the numeric
// feature vector consumed by the regression model. The same builder is used
// by the training pipeline and the serving path so the two can never drift.
package features

import "strings"

// DefaultProcessorGHz is returned for processor names not present in the
// speed table.
const DefaultProcessorGHz = 2.0

// processorEntry pairs a processor-name substring with its maximum clock
// speed in GHz.
type processorEntry struct {
	Name string
	GHz  float64
}

// processorSpeeds is the shared lookup table for processor clock speeds.
// Order matters: lookup returns the first entry whose name is contained in
// the input, so more specific names must come before shorter prefixes of
// themselves (e.g. "Snapdragon 8 Gen 3" before any bare "Snapdragon").
var processorSpeeds = []processorEntry{
	// Apple
	{"A17 Pro", 3.78},
	{"A17 Bionic", 3.78},
	{"A16 Bionic", 3.46},
	{"A15 Bionic", 3.23},
	{"A14 Bionic", 3.1},
	{"A13 Bionic", 2.65},
	{"A12 Bionic", 2.5},
	{"A11 Bionic", 2.4},

	// Qualcomm Snapdragon
	{"Snapdragon 8 Gen 3", 3.3},
	{"Snapdragon 8 Gen 2", 3.2},
	{"Snapdragon 8+ Gen 1", 3.2},
	{"Snapdragon 8 Gen 1", 3.0},
	{"Snapdragon 7+ Gen 2", 2.91},
	{"Snapdragon 7 Gen 1", 2.4},

	// MediaTek
	{"MediaTek Dimensity 9300", 3.25},
	{"MediaTek Dimensity 9200", 3.05},
	{"MediaTek Dimensity 9000", 3.05},
	{"MediaTek Dimensity 8300", 3.35},
	{"MediaTek Dimensity 8200", 3.1},

	// Samsung Exynos
	{"Exynos 2400", 3.2},
	{"Exynos 2200", 2.8},
	{"Exynos 1380", 2.4},

	// Google Tensor
	{"Google Tensor G3", 2.91},
	{"Google Tensor G2", 2.85},
	{"Google Tensor", 2.8},
}

// ResolveProcessorGHz maps a free-text processor model name to a clock speed
// estimate in GHz. Matching is case-insensitive substring containment in
// table order; the first hit wins. Unrecognised names (including the empty
// string) resolve to DefaultProcessorGHz. Total over all inputs.
func ResolveProcessorGHz(name string) float64 {
	lower := strings.ToLower(name)
	for _, entry := range processorSpeeds {
		if strings.Contains(lower, strings.ToLower(entry.Name)) {
			return entry.GHz
		}
	}
	return DefaultProcessorGHz
}

// KnownProcessorCount returns the number of entries in the speed table.
// Exposed for status reporting.
func KnownProcessorCount() int {
	return len(processorSpeeds)
}
