// Package log defines standard attribute keys for machine learning operations.
//
// Using these keys consistently keeps fit/transform log records filterable:
// all shape information lives under "data.*", all lifecycle context under
// "ml.*" and "model.*".
package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of estimator or transformer.
	// Examples: "LinearDiscriminantAnalysis", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "decomposition", "preprocessing", "metrics"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct label values seen during fitting.
	ClassesKey = "data.classes"

	// DimensionsKey is the output dimensionality of a projection.
	DimensionsKey = "data.dimensions"
)

// Fit diagnostics.
const (
	// ExplainedVarianceKey is the variance retained by a fitted projection.
	ExplainedVarianceKey = "fit.explained_variance"

	// NoiseVarianceKey is the variance discarded by a fitted projection.
	NoiseVarianceKey = "fit.noise_variance"

	// LossinessKey is the fraction of total variance discarded.
	LossinessKey = "fit.lossiness"
)
