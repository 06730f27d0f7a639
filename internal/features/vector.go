package features

// NumFeatures is the fixed width of the model's feature vector.
const NumFeatures = 8

// FeatureNames lists the vector slots in their canonical order. The scaler
// and the forest are fitted against this exact order; it must never be
// reordered or renamed without retraining.
var FeatureNames = [NumFeatures]string{
	"Mobile Weight",
	"RAM",
	"Front Camera",
	"Back Camera",
	"Processor_Speed",
	"Battery Capacity",
	"Screen Size",
	"Launched Year",
}

// Spec is a fully-typed mobile specification. The training pipeline fills
// it from cleaned CSV text; the serving path fills it from an already-typed
// JSON request. Both feed the same Build.
type Spec struct {
	MobileWeight    float64 // grams
	RAM             float64 // GB
	FrontCamera     float64 // MP
	BackCamera      float64 // MP
	Processor       string  // free-text model name
	BatteryCapacity float64 // mAh
	ScreenSize      float64 // inches
	LaunchedYear    float64
}

// Vector is one model input row in canonical order.
type Vector [NumFeatures]float64

// Build assembles the feature vector for a spec, resolving the processor
// name to its GHz estimate. Pure and deterministic: the training and
// serving paths must produce identical vectors for identical specs.
func Build(s Spec) Vector {
	return Vector{
		s.MobileWeight,
		s.RAM,
		s.FrontCamera,
		s.BackCamera,
		ResolveProcessorGHz(s.Processor),
		s.BatteryCapacity,
		s.ScreenSize,
		s.LaunchedYear,
	}
}
