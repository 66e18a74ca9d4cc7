package metrics

import (
	"math"
	"strings"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []string
		yPred   []string
		want    float64
		wantErr bool
	}{
		{
			name:  "all correct",
			yTrue: []string{"a", "b", "a"},
			yPred: []string{"a", "b", "a"},
			want:  1,
		},
		{
			name:  "half correct",
			yTrue: []string{"a", "b", "a", "b"},
			yPred: []string{"a", "a", "b", "b"},
			want:  0.5,
		},
		{
			name:    "length mismatch",
			yTrue:   []string{"a", "b"},
			yPred:   []string{"a"},
			wantErr: true,
		},
		{
			name:    "empty",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accuracy = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []string{"cat", "cat", "dog", "dog", "dog"}
	yPred := []string{"cat", "dog", "dog", "dog", "cat"}

	cm, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("ConfusionMatrix failed: %v", err)
	}

	if len(cm.Classes) != 2 || cm.Classes[0] != "cat" || cm.Classes[1] != "dog" {
		t.Fatalf("Classes = %v, want [cat dog] in first-occurrence order", cm.Classes)
	}
	if cm.Counts[0][0] != 1 || cm.Counts[0][1] != 1 {
		t.Errorf("cat row = %v, want [1 1]", cm.Counts[0])
	}
	if cm.Counts[1][0] != 1 || cm.Counts[1][1] != 2 {
		t.Errorf("dog row = %v, want [1 2]", cm.Counts[1])
	}

	if got := cm.Precision("cat"); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Precision(cat) = %g, want 0.5", got)
	}
	if got := cm.Recall("dog"); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("Recall(dog) = %g, want 2/3", got)
	}
	if got := cm.Precision("bird"); got != 0 {
		t.Errorf("Precision of unknown class = %g, want 0", got)
	}

	report := cm.Report()
	if !strings.Contains(report, "cat") || !strings.Contains(report, "dog") {
		t.Errorf("Report() missing classes:\n%s", report)
	}
}
