package decomposition

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/sujitagarwal/RubixML/dataset"
	"github.com/sujitagarwal/RubixML/pkg/errors"
)

const tolerance = 1e-9

// twoClusters returns 6 samples with 2 continuous features forming two
// well-separated clusters labeled A and B.
func twoClusters(t *testing.T) *dataset.Labeled {
	t.Helper()
	X := mat.NewDense(6, 2, []float64{
		0.0, 0.0,
		0.2, 0.1,
		-0.1, 0.05,
		10.0, 4.0,
		10.2, 4.1,
		9.9, 3.95,
	})
	ds, err := dataset.NewLabeled(X, []string{"A", "A", "A", "B", "B", "B"})
	if err != nil {
		t.Fatalf("NewLabeled failed: %v", err)
	}
	return ds
}

func TestNewLDA(t *testing.T) {
	tests := []struct {
		name       string
		dimensions int
		wantErr    bool
	}{
		{name: "one dimension", dimensions: 1, wantErr: false},
		{name: "several dimensions", dimensions: 5, wantErr: false},
		{name: "zero dimensions", dimensions: 0, wantErr: true},
		{name: "negative dimensions", dimensions: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lda, err := NewLDA(tt.dimensions)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLDA(%d) error = %v, wantErr %v", tt.dimensions, err, tt.wantErr)
			}
			if tt.wantErr {
				var ve *errors.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if lda.IsFitted() {
				t.Error("freshly constructed transformer must not be fitted")
			}
		})
	}
}

func TestLDAFitTransformEndToEnd(t *testing.T) {
	ds := twoClusters(t)

	lda, err := NewLDA(1)
	if err != nil {
		t.Fatalf("NewLDA failed: %v", err)
	}
	if err := lda.Fit(ds); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !lda.IsFitted() {
		t.Fatal("IsFitted() = false after successful Fit")
	}
	ev, ok := lda.ExplainedVariance()
	if !ok {
		t.Fatal("ExplainedVariance() reported absent after Fit")
	}
	if ev <= 0 {
		t.Errorf("ExplainedVariance() = %g, want > 0 for separated clusters", ev)
	}

	projected, err := lda.Transform(ds.Samples())
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// P1: m rows of width k.
	r, c := projected.Dims()
	if r != 6 || c != 1 {
		t.Fatalf("projected dims = (%d, %d), want (6, 1)", r, c)
	}

	// The two strata must be linearly separated along the discriminant
	// axis. The eigenvector sign is solver-dependent, so compare cluster
	// ranges rather than absolute signs.
	maxA := math.Inf(-1)
	minA := math.Inf(1)
	maxB := math.Inf(-1)
	minB := math.Inf(1)
	for i := 0; i < 3; i++ {
		maxA = math.Max(maxA, projected.At(i, 0))
		minA = math.Min(minA, projected.At(i, 0))
	}
	for i := 3; i < 6; i++ {
		maxB = math.Max(maxB, projected.At(i, 0))
		minB = math.Min(minB, projected.At(i, 0))
	}
	if !(maxA < minB || maxB < minA) {
		t.Errorf("projected clusters overlap: A in [%g, %g], B in [%g, %g]", minA, maxA, minB, maxB)
	}
}

func TestLDATransformSingleRow(t *testing.T) {
	ds := twoClusters(t)
	lda, _ := NewLDA(1)
	if err := lda.Fit(ds); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	out, err := lda.Transform(mat.NewDense(1, 2, []float64{0.1, 0.05}))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if r, c := out.Dims(); r != 1 || c != 1 {
		t.Errorf("dims = (%d, %d), want (1, 1)", r, c)
	}
}

func TestLDADeterminism(t *testing.T) {
	ds := twoClusters(t)

	fit := func() (*LinearDiscriminantAnalysis, mat.Matrix) {
		lda, err := NewLDA(1)
		if err != nil {
			t.Fatalf("NewLDA failed: %v", err)
		}
		if err := lda.Fit(ds); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		out, err := lda.Transform(ds.Samples())
		if err != nil {
			t.Fatalf("Transform failed: %v", err)
		}
		return lda, out
	}

	first, firstOut := fit()
	second, secondOut := fit()

	fv, _ := first.ExplainedVariance()
	sv, _ := second.ExplainedVariance()
	if !closeRel(fv, sv, tolerance) {
		t.Errorf("explained variance differs across fits: %g vs %g", fv, sv)
	}
	fl, _ := first.Lossiness()
	sl, _ := second.Lossiness()
	if !closeRel(fl, sl, tolerance) {
		t.Errorf("lossiness differs across fits: %g vs %g", fl, sl)
	}

	r, c := firstOut.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !closeRel(firstOut.At(i, j), secondOut.At(i, j), tolerance) {
				t.Fatalf("projection differs at (%d, %d): %g vs %g", i, j, firstOut.At(i, j), secondOut.At(i, j))
			}
		}
	}
}

func TestLDAVarianceAccounting(t *testing.T) {
	ds := twoClusters(t)

	lda, _ := NewLDA(1)
	if err := lda.Fit(ds); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, between, err := ScatterMatrices(ds)
	if err != nil {
		t.Fatalf("ScatterMatrices failed: %v", err)
	}

	// The trace equals the eigenvalue sum, so explained + noise must
	// reproduce it.
	d, _ := between.Dims()
	var total float64
	for i := 0; i < d; i++ {
		total += between.At(i, i)
	}

	ev, _ := lda.ExplainedVariance()
	nv, _ := lda.NoiseVariance()
	if !closeRel(ev+nv, total, tolerance) {
		t.Errorf("explained (%g) + noise (%g) = %g, want total %g", ev, nv, ev+nv, total)
	}

	loss, _ := lda.Lossiness()
	if loss < -tolerance || loss > 1+tolerance {
		t.Errorf("lossiness = %g, want within [0, 1]", loss)
	}
}

func TestLDADegenerateZeroVariance(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		3.0, 7.0,
		3.0, 7.0,
		3.0, 7.0,
		3.0, 7.0,
	})
	ds, err := dataset.NewLabeled(X, []string{"A", "A", "B", "B"})
	if err != nil {
		t.Fatalf("NewLabeled failed: %v", err)
	}

	lda, _ := NewLDA(1)
	if err := lda.Fit(ds); err != nil {
		t.Fatalf("Fit on a constant dataset must not fail, got: %v", err)
	}

	loss, ok := lda.Lossiness()
	if !ok {
		t.Fatal("Lossiness() reported absent after Fit")
	}
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		t.Errorf("lossiness = %g, want finite (epsilon guard)", loss)
	}
}

func TestLDAUnfittedGuard(t *testing.T) {
	lda, err := NewLDA(1)
	if err != nil {
		t.Fatalf("NewLDA failed: %v", err)
	}

	_, err = lda.Transform(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if err == nil {
		t.Fatal("Transform on an unfitted transformer must fail")
	}
	var nfe *errors.NotFittedError
	if !errors.As(err, &nfe) {
		t.Errorf("expected NotFittedError, got %T: %v", err, err)
	}

	if _, ok := lda.ExplainedVariance(); ok {
		t.Error("ExplainedVariance() must report absent when unfitted")
	}
	if _, ok := lda.NoiseVariance(); ok {
		t.Error("NoiseVariance() must report absent when unfitted")
	}
	if _, ok := lda.Lossiness(); ok {
		t.Error("Lossiness() must report absent when unfitted")
	}
}

func TestLDAPreconditionEnforcement(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})

	unlabeled, err := dataset.NewUnlabeled(mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8}))
	if err != nil {
		t.Fatalf("NewUnlabeled failed: %v", err)
	}
	mixed, err := dataset.NewLabeled(X, []string{"A", "A", "B", "B"},
		dataset.WithColumnKinds(dataset.Continuous, dataset.Categorical))
	if err != nil {
		t.Fatalf("NewLabeled failed: %v", err)
	}
	categorical, err := dataset.NewLabeled(X, []string{"A", "A", "B", "B"},
		dataset.WithColumnKinds(dataset.Categorical, dataset.Categorical))
	if err != nil {
		t.Fatalf("NewLabeled failed: %v", err)
	}
	regression, err := dataset.NewLabeled(X, []string{"1.5", "2.5", "3.5", "4.5"},
		dataset.WithLabelKind(dataset.Continuous))
	if err != nil {
		t.Fatalf("NewLabeled failed: %v", err)
	}

	tests := []struct {
		name string
		ds   dataset.Dataset
	}{
		{name: "unlabeled dataset", ds: unlabeled},
		{name: "mixed feature kinds", ds: mixed},
		{name: "categorical features", ds: categorical},
		{name: "continuous labels", ds: regression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lda, err := NewLDA(1)
			if err != nil {
				t.Fatalf("NewLDA failed: %v", err)
			}

			err = lda.Fit(tt.ds)
			if err == nil {
				t.Fatal("Fit must fail for invalid input")
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
			if lda.IsFitted() {
				t.Error("failed Fit must leave the transformer unfitted")
			}
		})
	}
}

func TestLDATransformDimensionMismatch(t *testing.T) {
	ds := twoClusters(t)
	lda, _ := NewLDA(1)
	if err := lda.Fit(ds); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, err := lda.Transform(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	if err == nil {
		t.Fatal("Transform must fail when sample width differs from the fitted width")
	}
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected DimensionError, got %T: %v", err, err)
	}
}

func TestLDAFitDimensionsExceedFeatures(t *testing.T) {
	ds := twoClusters(t)

	lda, err := NewLDA(3)
	if err != nil {
		t.Fatalf("NewLDA failed: %v", err)
	}

	err = lda.Fit(ds)
	if err == nil {
		t.Fatal("Fit must fail when dimensions exceed the feature count")
	}
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected DimensionError, got %T: %v", err, err)
	}
	if lda.IsFitted() {
		t.Error("failed Fit must leave the transformer unfitted")
	}
}

func TestLDARefitReplacesState(t *testing.T) {
	first := twoClusters(t)

	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 100,
		1, 100,
	})
	second, err := dataset.NewLabeled(X, []string{"A", "A", "B", "B"})
	if err != nil {
		t.Fatalf("NewLabeled failed: %v", err)
	}

	lda, _ := NewLDA(1)
	if err := lda.Fit(first); err != nil {
		t.Fatalf("first Fit failed: %v", err)
	}
	before, _ := lda.ExplainedVariance()

	if err := lda.Fit(second); err != nil {
		t.Fatalf("second Fit failed: %v", err)
	}
	after, _ := lda.ExplainedVariance()

	if closeRel(before, after, tolerance) {
		t.Errorf("refit on different data left diagnostics unchanged: %g", after)
	}
}

func TestLDAFitTransform(t *testing.T) {
	ds := twoClusters(t)

	lda, _ := NewLDA(1)
	out, err := lda.FitTransform(ds)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if r, c := out.Dims(); r != 6 || c != 1 {
		t.Errorf("dims = (%d, %d), want (6, 1)", r, c)
	}
	if !lda.IsFitted() {
		t.Error("IsFitted() = false after FitTransform")
	}
}

// closeRel reports whether a and b agree within a relative tolerance,
// falling back to absolute comparison near zero.
func closeRel(a, b, tol float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		return diff <= tol
	}
	return diff <= tol*scale
}
