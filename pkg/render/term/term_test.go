package term

import (
	"strings"
	"testing"

	"github.com/matzehuels/wraplayout/pkg/core/wrap"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

func testResult() scene.Result {
	return scene.Result{
		Size: wrap.Size{Width: 20, Height: 3},
		Lines: []scene.ResultLine{
			{Width: 15, Height: 1, Items: []string{"a", "b"}},
			{Width: 20, Height: 1, Items: []string{"c"}},
		},
		Items: []scene.Placed{
			{ID: "a", Kind: scene.KindText, Label: "Hi", X: 0, Width: 6},
			{ID: "b", Kind: scene.KindBox, X: 10, Width: 5},
			{ID: "c", Kind: scene.KindText, Label: "a very long label", Line: 1, Y: 2, Width: 10},
		},
	}
}

func TestRender(t *testing.T) {
	got := Render(testResult(), Options{Columns: 40})
	want := "[Hi  ]    ░░░░░\n[a very …]\n"
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderScalesDown(t *testing.T) {
	got := Render(testResult(), Options{Columns: 10})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	for i, l := range lines {
		if n := len([]rune(l)); n > 10 {
			t.Errorf("row %d is %d columns, want <= 10: %q", i, n, l)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	got := Render(testResult(), Options{Columns: 40, Summary: true})
	if !strings.HasSuffix(got, "2 lines · 3 items · 20×3\n") {
		t.Errorf("missing summary: %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(scene.Result{}, Options{}); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		p    scene.Placed
		n    int
		want string
	}{
		{scene.Placed{Kind: scene.KindText, Label: "Hello"}, 7, "[Hello]"},
		{scene.Placed{Kind: scene.KindText, Label: "Hello"}, 6, "[Hel…]"},
		{scene.Placed{Kind: scene.KindText, Label: "Hello"}, 2, "##"},
		{scene.Placed{Kind: scene.KindBox}, 3, "░░░"},
	}
	for _, tt := range tests {
		if got := cell(tt.p, tt.n); got != tt.want {
			t.Errorf("cell(%q, %d) = %q, want %q", tt.p.Label, tt.n, got, tt.want)
		}
	}
}
