package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sujitagarwal/RubixML/dataset"
)

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// DatasetTransformer はデータセット契約を直接消費する変換器の
// インターフェース。教師あり変換（ラベルを必要とするもの）は
// Fit の境界で dataset.LabeledDataset への適合を検証する。
type DatasetTransformer interface {
	// Fit はデータセットから変換パラメータを学習する
	Fit(ds dataset.Dataset) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)
}
