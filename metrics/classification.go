package metrics

import (
	"fmt"
	"strings"

	"github.com/sujitagarwal/RubixML/pkg/errors"
)

// Accuracy は正解ラベルと予測ラベルの一致率を計算する
func Accuracy(yTrue, yPred []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("Accuracy", "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}

	var correct int
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// Confusion は混同行列とクラスごとの集計を保持する
type Confusion struct {
	// Classes はラベル値の一覧（初出順）
	Classes []string

	// Counts は Counts[i][j] = 真のクラスi・予測クラスj の件数
	Counts [][]int

	index map[string]int
}

// ConfusionMatrix は混同行列を計算する。
// クラスの順序はyTrue・yPredでの初出順で決定的。
func ConfusionMatrix(yTrue, yPred []string) (*Confusion, error) {
	if len(yTrue) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(yTrue), len(yPred), 0)
	}

	cm := &Confusion{index: make(map[string]int)}
	register := func(label string) int {
		if i, ok := cm.index[label]; ok {
			return i
		}
		i := len(cm.Classes)
		cm.index[label] = i
		cm.Classes = append(cm.Classes, label)
		for r := range cm.Counts {
			cm.Counts[r] = append(cm.Counts[r], 0)
		}
		cm.Counts = append(cm.Counts, make([]int, i+1))
		return i
	}

	for i := range yTrue {
		t := register(yTrue[i])
		p := register(yPred[i])
		cm.Counts[t][p]++
	}
	return cm, nil
}

// Precision はクラスlabelの適合率を返す。
// そのクラスへの予測が一件もない場合は0を返す。
func (c *Confusion) Precision(label string) float64 {
	j, ok := c.index[label]
	if !ok {
		return 0
	}
	var predicted int
	for i := range c.Counts {
		predicted += c.Counts[i][j]
	}
	if predicted == 0 {
		return 0
	}
	return float64(c.Counts[j][j]) / float64(predicted)
}

// Recall はクラスlabelの再現率を返す。
// そのクラスの真のサンプルが一件もない場合は0を返す。
func (c *Confusion) Recall(label string) float64 {
	i, ok := c.index[label]
	if !ok {
		return 0
	}
	var actual int
	for j := range c.Counts[i] {
		actual += c.Counts[i][j]
	}
	if actual == 0 {
		return 0
	}
	return float64(c.Counts[i][i]) / float64(actual)
}

// Report はクラスごとの適合率・再現率をまとめた文字列を返す
func (c *Confusion) Report() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-16s %9s %9s\n", "class", "precision", "recall"))
	for _, label := range c.Classes {
		b.WriteString(fmt.Sprintf("%-16s %9.4f %9.4f\n", label, c.Precision(label), c.Recall(label)))
	}
	return b.String()
}
