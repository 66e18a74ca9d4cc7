package decomposition

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/sujitagarwal/RubixML/core/model"
	"github.com/sujitagarwal/RubixML/dataset"
	"github.com/sujitagarwal/RubixML/pkg/errors"
	"github.com/sujitagarwal/RubixML/pkg/log"
)

// LinearDiscriminantAnalysis はラベルの分離を最もよく説明する方向へ
// サンプルを射影する教師あり次元削減変換器。
//
// Fit はクラス間散布行列の固有値分解から、固有値の大きい順に
// dimensions 本の固有ベクトルを選んで d×k の射影基底を構築する。
// （古典的なLDAの一般化固有値問題 Sw⁻¹·Sb ではなく Sb を直接
// 分解する。これは移植元の挙動をそのまま保存したもの。）
//
// 並行性: Fit は単一ゴルーチンから呼ぶこと。Fit 完了後、追加の
// Fit が走らない限り Transform は複数ゴルーチンから安全に呼べる
// （学習済み基底を読むだけのため）。
type LinearDiscriminantAnalysis struct {
	model.BaseEstimator

	// dimensions は射影後の次元数 k（構築時に固定）
	dimensions int

	// basis は d×k の射影基底。列は固有値の降順に並んだ固有ベクトル。
	basis *mat.Dense

	// 学習時の診断値
	explainedVariance float64
	noiseVariance     float64
	lossiness         float64
}

var (
	_ model.DatasetTransformer = (*LinearDiscriminantAnalysis)(nil)
	_ model.ParameterGetter    = (*LinearDiscriminantAnalysis)(nil)
)

// NewLDA は新しいLinearDiscriminantAnalysisを作成する
//
// パラメータ:
//   - dimensions: 射影後の次元数 (1以上、学習データの特徴量数以下)
//
// 戻り値:
//   - *LinearDiscriminantAnalysis: 新しい変換器
//   - error: dimensionsが1未満の場合はValidationError
func NewLDA(dimensions int) (*LinearDiscriminantAnalysis, error) {
	if dimensions < 1 {
		return nil, errors.NewValidationError("dimensions", "must be at least 1", dimensions)
	}
	return &LinearDiscriminantAnalysis{dimensions: dimensions}, nil
}

// Fit は散布行列の推定、固有値分解、固有対のランク付けを行い、
// 射影基底と分散の診断値を学習する。
//
// 事前条件はScatterMatricesと同じで、違反した場合は一切の状態を
// 変更せずに失敗する（結果はすべてローカルに計算し、最後に
// まとめて代入する）。成功した場合、以前の学習状態は完全に
// 置き換えられる。
func (l *LinearDiscriminantAnalysis) Fit(ds dataset.Dataset) error {
	_, between, err := ScatterMatrices(ds)
	if err != nil {
		return err
	}

	n, d := ds.Shape()
	if l.dimensions > d {
		return errors.NewDimensionError("LinearDiscriminantAnalysis.Fit", d, l.dimensions, 1)
	}

	// Sb は対称行列として構築されているため EigenSym が使える。
	// 固有値・固有ベクトルは実数で、同一入力に対して決定的。
	var eig mat.EigenSym
	if !eig.Factorize(between, true) {
		return errors.NewModelError("LinearDiscriminantAnalysis.Fit", "eigendecomposition did not converge", errors.ErrEigenFailed)
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// 固有値の降順に固有対を並べる。同値の場合はソルバーの出力順
	// （昇順インデックス）を保つので、順序は入力に対して決定的。
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	var total float64
	for _, v := range values {
		total += v
	}

	basis := mat.NewDense(d, l.dimensions, nil)
	var explained float64
	for c := 0; c < l.dimensions; c++ {
		i := order[c]
		explained += values[i]
		for r := 0; r < d; r++ {
			basis.Set(r, c, vectors.At(r, i))
		}
	}

	noise := total - explained
	// 全分散がちょうど0の場合はEpsilonを分母にして0除算を避ける
	lossiness := errors.SafeDivide(noise, total)

	l.basis = basis
	l.explainedVariance = explained
	l.noiseVariance = noise
	l.lossiness = lossiness
	l.SetFitted()

	logger := log.GetLoggerWithName("decomposition.lda")
	logger.Debug("fit complete",
		log.ModelNameKey, "LinearDiscriminantAnalysis",
		log.OperationKey, "fit",
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.DimensionsKey, l.dimensions,
		log.ExplainedVarianceKey, explained,
		log.NoiseVarianceKey, noise,
		log.LossinessKey, lossiness,
	)

	return nil
}

// Transform はサンプルを学習済み基底で射影し、n×kの新しい行列を返す。
// 入力は変更しない（結果は常に新規割り当て）。
//
// 戻り値:
//   - mat.Matrix: 射影されたサンプル (n×k)
//   - error: 未学習の場合はNotFittedError、
//     入力の列数が学習時の特徴量数と異なる場合はDimensionError
func (l *LinearDiscriminantAnalysis) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !l.IsFitted() {
		return nil, errors.NewNotFittedError("LinearDiscriminantAnalysis", "Transform")
	}

	n, d := X.Dims()
	br, _ := l.basis.Dims()
	if d != br {
		return nil, errors.NewDimensionError("LinearDiscriminantAnalysis.Transform", br, d, 1)
	}

	projected := mat.NewDense(n, l.dimensions, nil)
	projected.Mul(X, l.basis)
	return projected, nil
}

// FitTransform は学習と同一データの変換を続けて実行する
func (l *LinearDiscriminantAnalysis) FitTransform(ds dataset.Dataset) (mat.Matrix, error) {
	if err := l.Fit(ds); err != nil {
		return nil, err
	}
	return l.Transform(ds.Samples())
}

// ExplainedVariance は保持したk個の固有値の和を返す。
// 未学習の場合、okはfalse。
func (l *LinearDiscriminantAnalysis) ExplainedVariance() (v float64, ok bool) {
	if !l.IsFitted() {
		return 0, false
	}
	return l.explainedVariance, true
}

// NoiseVariance は打ち切りで捨てた固有値の和を返す。
// 未学習の場合、okはfalse。
func (l *LinearDiscriminantAnalysis) NoiseVariance() (v float64, ok bool) {
	if !l.IsFitted() {
		return 0, false
	}
	return l.noiseVariance, true
}

// Lossiness は全分散のうち打ち切りで失われた割合を返す。
// 未学習の場合、okはfalse。
func (l *LinearDiscriminantAnalysis) Lossiness() (v float64, ok bool) {
	if !l.IsFitted() {
		return 0, false
	}
	return l.lossiness, true
}

// GetParams は変換器のハイパーパラメータを返す
func (l *LinearDiscriminantAnalysis) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"dimensions": l.dimensions,
	}
}

// String は変換器の文字列表現を返す
func (l *LinearDiscriminantAnalysis) String() string {
	if !l.IsFitted() {
		return fmt.Sprintf("LinearDiscriminantAnalysis(dimensions=%d)", l.dimensions)
	}
	return fmt.Sprintf("LinearDiscriminantAnalysis(dimensions=%d, explained_variance=%.6g, lossiness=%.6g)",
		l.dimensions, l.explainedVariance, l.lossiness)
}
