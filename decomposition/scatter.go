// Package decomposition は統計的な次元削減変換器を提供します。
//
// 中核は線形判別分析 (LinearDiscriminantAnalysis) で、クラス内・クラス間
// 散布行列の推定、固有値分解、固有対のランク付けと打ち切り、分散の
// 会計処理、および射影基底の適用から構成されます。
package decomposition

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sujitagarwal/RubixML/dataset"
	"github.com/sujitagarwal/RubixML/pkg/errors"
)

// ScatterMatrices はラベル付きデータセットからクラス内散布行列 (Sw) と
// クラス間散布行列 (Sb) を計算する。
//
//	Sw = Σ_層 ( 層の共分散行列 × 層のサンプル数 / 総サンプル数 )
//	Sb = 全体の共分散行列 − Sw
//
// 共分散は列を変数、行を観測とする母共分散（m で割る）。母分散を
// 使うことで 1 行だけの層でも有限の値になる。Sw と Sb はどちらも
// d×d の SymDense として構築されるため、対称性は浮動小数点の
// 非対称誤差によらず構造的に保証される。
//
// 事前条件（いずれかに違反した場合、計算を始める前に失敗する）:
//   - ds がラベル付きデータセットの契約を満たすこと
//   - 全ての特徴量列が同一型かつ連続値であること
//   - ラベルがカテゴリ値であること
func ScatterMatrices(ds dataset.Dataset) (within, between *mat.SymDense, err error) {
	labeled, err := validateSupervised("decomposition.ScatterMatrices", ds)
	if err != nil {
		return nil, nil, err
	}

	n, d := labeled.Shape()

	within = mat.NewSymDense(d, nil)
	for _, s := range labeled.Stratify() {
		m, _ := s.Data.Shape()
		cov := populationCovariance(s.Data.Samples())
		weight := float64(m) / float64(n)
		for i := 0; i < d; i++ {
			for j := i; j < d; j++ {
				within.SetSym(i, j, within.At(i, j)+cov.At(i, j)*weight)
			}
		}
	}

	total := populationCovariance(labeled.Samples())
	between = mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			between.SetSym(i, j, total.At(i, j)-within.At(i, j))
		}
	}

	return within, between, nil
}

// populationCovariance は母共分散行列 (XᶜᵀXᶜ / m) を計算する
func populationCovariance(X *mat.Dense) *mat.SymDense {
	m, d := X.Dims()

	centered := mat.NewDense(m, d, nil)
	col := make([]float64, m)
	for j := 0; j < d; j++ {
		mat.Col(col, j, X)
		mean := stat.Mean(col, nil)
		for i := 0; i < m; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}

	cov := mat.NewSymDense(d, nil)
	cov.SymOuterK(1/float64(m), centered.T())
	return cov
}

// validateSupervised は教師あり変換の事前条件を検証する。
// 違反はそれぞれ別個のValidationErrorとして報告される。
func validateSupervised(op string, ds dataset.Dataset) (dataset.LabeledDataset, error) {
	labeled, ok := ds.(dataset.LabeledDataset)
	if !ok {
		return nil, errors.NewValidationError("dataset", "must be a labeled dataset", fmt.Sprintf("%T", ds))
	}

	n, d := labeled.Shape()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if !labeled.Homogeneous() {
		return nil, errors.NewValidationError("dataset", "features must be homogeneous", "mixed column kinds")
	}
	if labeled.ColumnKind(0) != dataset.Continuous {
		return nil, errors.NewValidationError("dataset", "features must be continuous", labeled.ColumnKind(0).String())
	}
	if labeled.LabelKind() != dataset.Categorical {
		return nil, errors.NewValidationError("dataset", "labels must be categorical", labeled.LabelKind().String())
	}

	return labeled, nil
}
