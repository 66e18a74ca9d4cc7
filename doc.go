// Package rubix provides an in-memory machine learning toolkit for Go,
// offering data transformers, dimensionality reduction, and evaluation
// metrics over tabular datasets.
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: labeled/unlabeled tabular containers, stratification,
//     stratified splitting, and data generators
//   - decomposition: statistical dimensionality reduction
//     (LinearDiscriminantAnalysis)
//   - preprocessing: per-feature transformers (StandardScaler)
//   - metrics: evaluation metrics and reports (accuracy, confusion matrix,
//     MSE, RMSE, R²)
//   - core/model: shared estimator interfaces and the fitted-state machine
//   - core/parallel: chunked CPU-parallel loop helpers
//   - pkg/errors: typed failure taxonomy with stack traces
//   - pkg/log: structured logging for fit/transform diagnostics
//
// # Quick Start
//
// Fit a discriminant projection and transform new samples:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/sujitagarwal/RubixML/dataset"
//	    "github.com/sujitagarwal/RubixML/decomposition"
//	)
//
//	func main() {
//	    ds, err := dataset.Blobs(60, [][]float64{{0, 0}, {8, 4}}, 0.5, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lda, err := decomposition.NewLDA(1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    projected, err := lda.FitTransform(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(projected)
//	}
//
// # Error Handling
//
// All failures are synchronous, typed, and carry stack traces: unfitted use
// raises *errors.NotFittedError, shape mismatches raise
// *errors.DimensionError, and contract violations raise
// *errors.ValidationError. There is no retry or silent coercion; callers
// match on the failure kind with errors.As.
//
// # Concurrency
//
// Estimators hold unsynchronized fitted state. Call Fit from a single
// goroutine; once fitting completes, Transform only reads the fitted state
// and may be called concurrently.
package rubix
