package predict

import "github.com/SubhashMOthukuri/ml-mobile-analysis/internal/features"

// Request is the wire-level prediction input. Fields are pointers so an
// absent JSON key is distinguishable from a legitimate zero, the same trick
// the config loader uses; Validate turns nil fields into a ValidationError
// naming them.
type Request struct {
	MobileWeight    *float64 `json:"Mobile Weight"`
	RAM             *float64 `json:"RAM"`
	FrontCamera     *float64 `json:"Front Camera"`
	BackCamera      *float64 `json:"Back Camera"`
	Processor       *string  `json:"Processor"`
	BatteryCapacity *float64 `json:"Battery Capacity"`
	ScreenSize      *float64 `json:"Screen Size"`
	LaunchedYear    *float64 `json:"Launched Year"`
}

// Validate checks that every required field is present and returns the
// typed spec. The returned error is always a *ValidationError listing all
// missing fields, not just the first.
func (r *Request) Validate() (features.Spec, error) {
	var missing []string
	if r.MobileWeight == nil {
		missing = append(missing, "Mobile Weight")
	}
	if r.RAM == nil {
		missing = append(missing, "RAM")
	}
	if r.FrontCamera == nil {
		missing = append(missing, "Front Camera")
	}
	if r.BackCamera == nil {
		missing = append(missing, "Back Camera")
	}
	if r.Processor == nil {
		missing = append(missing, "Processor")
	}
	if r.BatteryCapacity == nil {
		missing = append(missing, "Battery Capacity")
	}
	if r.ScreenSize == nil {
		missing = append(missing, "Screen Size")
	}
	if r.LaunchedYear == nil {
		missing = append(missing, "Launched Year")
	}
	if len(missing) > 0 {
		return features.Spec{}, &ValidationError{Fields: missing}
	}

	return features.Spec{
		MobileWeight:    *r.MobileWeight,
		RAM:             *r.RAM,
		FrontCamera:     *r.FrontCamera,
		BackCamera:      *r.BackCamera,
		Processor:       *r.Processor,
		BatteryCapacity: *r.BatteryCapacity,
		ScreenSize:      *r.ScreenSize,
		LaunchedYear:    *r.LaunchedYear,
	}, nil
}
