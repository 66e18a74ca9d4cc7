// Package dataset はメモリ上の表形式データセットを提供します。
//
// サンプル行列（n×d）とサンプルごとのラベルを1:1で保持し、
// ラベル値ごとの層化（stratification）、層化分割、列型の検査を
// サポートします。変換器・推定器はこのパッケージの契約を通じて
// データを消費します。
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sujitagarwal/RubixML/pkg/errors"
)

// Kind は列（またはラベル）の型を表す
type Kind int

const (
	// Continuous は連続値の列
	Continuous Kind = iota
	// Categorical はカテゴリ値の列
	Categorical
)

// String は型の文字列表現を返す
func (k Kind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "continuous"
}

// Dataset は表形式データの最小契約。
// ラベルの有無を問わず、サンプル行列と列型の検査を提供する。
type Dataset interface {
	// Shape は (サンプル数, 特徴量数) を返す
	Shape() (rows, cols int)

	// Samples はサンプル行列 (n×d) を返す。呼び出し側は変更してはならない。
	Samples() *mat.Dense

	// ColumnKind は j 番目の特徴量列の型を返す
	ColumnKind(j int) Kind

	// Homogeneous は全ての特徴量列が同一の型かどうかを返す
	Homogeneous() bool
}

// LabeledDataset はラベル付きデータセットの契約。
// ラベルによる層化をサポートする点が Dataset との違い。
// 実行時の型検査ではなく、この契約を満たす値だけが
// 教師あり学習の境界を通過できる。
type LabeledDataset interface {
	Dataset

	// Labels はサンプルと同順のラベル列を返す
	Labels() []string

	// LabelKind はラベルの型を返す
	LabelKind() Kind

	// Stratify はラベル値ごとの部分データセットを返す
	Stratify() []Stratum
}

// Stratum は同一ラベル値を共有する行の集まり
type Stratum struct {
	// Label はこの層のラベル値
	Label string
	// Data はこの層のサンプルを（元の行順を保って）含むデータセット
	Data *Labeled
}

// Unlabeled はラベルを持たない表形式データセット
type Unlabeled struct {
	samples *mat.Dense
	kinds   []Kind
}

// NewUnlabeled は新しいUnlabeledデータセットを作成する
func NewUnlabeled(samples *mat.Dense, opts ...Option) (*Unlabeled, error) {
	n, d := samples.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError("dataset.NewUnlabeled", "empty data", errors.ErrEmptyData)
	}

	cfg := newConfig(d)
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(d); err != nil {
		return nil, err
	}

	return &Unlabeled{samples: samples, kinds: cfg.kinds}, nil
}

// Shape は (サンプル数, 特徴量数) を返す
func (u *Unlabeled) Shape() (int, int) {
	return u.samples.Dims()
}

// Samples はサンプル行列を返す
func (u *Unlabeled) Samples() *mat.Dense {
	return u.samples
}

// ColumnKind は j 番目の列の型を返す
func (u *Unlabeled) ColumnKind(j int) Kind {
	return u.kinds[j]
}

// Homogeneous は全列が同一の型かどうかを返す
func (u *Unlabeled) Homogeneous() bool {
	return homogeneous(u.kinds)
}

// Labeled はラベル付きの表形式データセット。
// 不変条件: 全サンプルは同じ列数・列順を持ち、ラベル数はサンプル数に等しい。
type Labeled struct {
	samples   *mat.Dense
	labels    []string
	kinds     []Kind
	labelKind Kind
}

// Option はデータセット構築時の追加設定
type Option func(*config)

type config struct {
	kinds     []Kind
	labelKind Kind
}

func newConfig(d int) *config {
	kinds := make([]Kind, d)
	for j := range kinds {
		kinds[j] = Continuous
	}
	return &config{kinds: kinds, labelKind: Categorical}
}

func (c *config) validate(d int) error {
	if len(c.kinds) != d {
		return errors.NewDimensionError("dataset.WithColumnKinds", d, len(c.kinds), 1)
	}
	return nil
}

// WithColumnKinds は特徴量列の型を明示的に指定する。
// 指定しない場合、全列は連続値として扱われる。
func WithColumnKinds(kinds ...Kind) Option {
	return func(c *config) {
		c.kinds = kinds
	}
}

// WithLabelKind はラベルの型を指定する（デフォルト: Categorical）。
// 回帰のターゲットを保持する場合は Continuous を指定する。
func WithLabelKind(k Kind) Option {
	return func(c *config) {
		c.labelKind = k
	}
}

// NewLabeled は新しいLabeledデータセットを作成する
//
// パラメータ:
//   - samples: サンプル行列 (n×d)
//   - labels: サンプルと同順のラベル列 (長さ n)
//   - opts: 列型・ラベル型の指定
//
// 戻り値:
//   - *Labeled: 新しいデータセット
//   - error: 形状が不正な場合
func NewLabeled(samples *mat.Dense, labels []string, opts ...Option) (*Labeled, error) {
	n, d := samples.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError("dataset.NewLabeled", "empty data", errors.ErrEmptyData)
	}
	if len(labels) != n {
		return nil, errors.NewDimensionError("dataset.NewLabeled", n, len(labels), 0)
	}

	cfg := newConfig(d)
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(d); err != nil {
		return nil, err
	}

	return &Labeled{
		samples:   samples,
		labels:    labels,
		kinds:     cfg.kinds,
		labelKind: cfg.labelKind,
	}, nil
}

// Shape は (サンプル数, 特徴量数) を返す
func (l *Labeled) Shape() (int, int) {
	return l.samples.Dims()
}

// Samples はサンプル行列を返す。呼び出し側は変更してはならない。
func (l *Labeled) Samples() *mat.Dense {
	return l.samples
}

// Labels はラベル列のコピーを返す
func (l *Labeled) Labels() []string {
	out := make([]string, len(l.labels))
	copy(out, l.labels)
	return out
}

// ColumnKind は j 番目の特徴量列の型を返す
func (l *Labeled) ColumnKind(j int) Kind {
	return l.kinds[j]
}

// LabelKind はラベルの型を返す
func (l *Labeled) LabelKind() Kind {
	return l.labelKind
}

// Homogeneous は全ての特徴量列が同一の型かどうかを返す
func (l *Labeled) Homogeneous() bool {
	return homogeneous(l.kinds)
}

// Stratify はラベル値ごとの部分データセットを返す。
// 層の順序はラベル値の初出順で、各層の中では元の行順が保たれる。
// 同一入力に対して常に同一の結果を返す（決定的）。
func (l *Labeled) Stratify() []Stratum {
	n, d := l.samples.Dims()

	order := make([]string, 0)
	rows := make(map[string][]int)
	for i := 0; i < n; i++ {
		label := l.labels[i]
		if _, seen := rows[label]; !seen {
			order = append(order, label)
		}
		rows[label] = append(rows[label], i)
	}

	strata := make([]Stratum, 0, len(order))
	for _, label := range order {
		idx := rows[label]
		sub := mat.NewDense(len(idx), d, nil)
		subLabels := make([]string, len(idx))
		for r, i := range idx {
			sub.SetRow(r, l.samples.RawRowView(i))
			subLabels[r] = l.labels[i]
		}
		strata = append(strata, Stratum{
			Label: label,
			Data: &Labeled{
				samples:   sub,
				labels:    subLabels,
				kinds:     l.kinds,
				labelKind: l.labelKind,
			},
		})
	}
	return strata
}

// SplitStratified はデータセットを層化したまま train/test に分割する。
// 各層の先頭 ceil(m×ratio) 行が train 側、残りが test 側になる。
//
// パラメータ:
//   - ratio: train 側の比率 (0 < ratio < 1)
func (l *Labeled) SplitStratified(ratio float64) (train, test *Labeled, err error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, errors.NewValidationError("ratio", "must be in (0, 1)", ratio)
	}

	_, d := l.samples.Dims()
	var trainRows, testRows [][]float64
	var trainLabels, testLabels []string

	for _, s := range l.Stratify() {
		m, _ := s.Data.Shape()
		cut := ceilFrac(m, ratio)
		for i := 0; i < m; i++ {
			row := make([]float64, d)
			copy(row, s.Data.samples.RawRowView(i))
			if i < cut {
				trainRows = append(trainRows, row)
				trainLabels = append(trainLabels, s.Label)
			} else {
				testRows = append(testRows, row)
				testLabels = append(testLabels, s.Label)
			}
		}
	}

	build := func(rows [][]float64, labels []string) (*Labeled, error) {
		if len(rows) == 0 {
			return nil, errors.NewModelError("dataset.SplitStratified", "empty split", errors.ErrEmptyData)
		}
		m := mat.NewDense(len(rows), d, nil)
		for i, row := range rows {
			m.SetRow(i, row)
		}
		return &Labeled{samples: m, labels: labels, kinds: l.kinds, labelKind: l.labelKind}, nil
	}

	if train, err = build(trainRows, trainLabels); err != nil {
		return nil, nil, err
	}
	if test, err = build(testRows, testLabels); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

func ceilFrac(m int, ratio float64) int {
	cut := int(float64(m) * ratio)
	if float64(cut) < float64(m)*ratio {
		cut++
	}
	return cut
}

func homogeneous(kinds []Kind) bool {
	for _, k := range kinds {
		if k != kinds[0] {
			return false
		}
	}
	return true
}
