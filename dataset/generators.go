package dataset

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/sujitagarwal/RubixML/pkg/errors"
)

// Blobs は等方性ガウス分布のクラスタからなるラベル付きデータセットを生成する。
// サンプルはクラスタごとにラウンドロビンで割り当てられ、ラベルは
// "c0", "c1", ... の形式。同じシードに対して常に同じデータを返す。
//
// パラメータ:
//   - n: 生成するサンプル総数
//   - centers: クラスタ中心 (各中心は同じ次元数であること)
//   - stdDev: 各次元の標準偏差
//   - seed: 乱数シード
func Blobs(n int, centers [][]float64, stdDev float64, seed int64) (*Labeled, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("n", "must be positive", n)
	}
	if len(centers) == 0 {
		return nil, errors.NewValidationError("centers", "at least one center is required", len(centers))
	}
	d := len(centers[0])
	if d == 0 {
		return nil, errors.NewValidationError("centers", "centers must have at least one dimension", d)
	}
	for c, center := range centers {
		if len(center) != d {
			return nil, errors.NewDimensionError(fmt.Sprintf("dataset.Blobs(center %d)", c), d, len(center), 1)
		}
	}
	if stdDev < 0 {
		return nil, errors.NewValidationError("stdDev", "must be non-negative", stdDev)
	}

	rng := rand.New(rand.NewSource(seed))
	samples := mat.NewDense(n, d, nil)
	labels := make([]string, n)

	for i := 0; i < n; i++ {
		c := i % len(centers)
		for j := 0; j < d; j++ {
			samples.Set(i, j, centers[c][j]+rng.NormFloat64()*stdDev)
		}
		labels[i] = fmt.Sprintf("c%d", c)
	}

	return NewLabeled(samples, labels)
}
