package paramsearch

import (
	"strings"
	"testing"
)

func TestPrintBestScoresFormat(t *testing.T) {
	resetForTest()
	m := Instance()
	m.AppendScores([]PointScore{{Point: NewPoint(1, 2), Score: Score{Objective: 1}}})
	m.AppendScores([]PointScore{{Point: NewPoint(3, 4), Score: Score{Objective: -1}}})

	dims := []Dimension{{Name: "cache_size_mb"}, {Name: "replicas"}}

	var sb strings.Builder
	if err := m.PrintBestScores(&sb, dims); err != nil {
		t.Fatalf("PrintBestScores failed: %v", err)
	}
	out := sb.String()

	wantLines := []string{
		"x = [1:2];",
		"figure(1);",
		"hold on;",
		"y{1} = [1, 3];",
		"plot(x,y{1},'DisplayName','cache size mb');",
		"y{2} = [2, 4];",
		"plot(x,y{2},'DisplayName','replicas');",
		"legend;",
		"hold off;",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintBestScoresEmptyLog(t *testing.T) {
	resetForTest()
	m := Instance()

	var sb strings.Builder
	if err := m.PrintBestScores(&sb, nil); err != nil {
		t.Fatalf("PrintBestScores failed: %v", err)
	}
	if !strings.Contains(sb.String(), "x = [1:0];") {
		t.Errorf("expected an empty-log header, got:\n%s", sb.String())
	}
}
