package maze

import (
	"os"
	"path"
	"testing"

	"golang.org/x/exp/rand"
)

func TestPlotRendererSavesImage(t *testing.T) {
	renderer := NewPlotRenderer()
	m, err := New(&Config{
		Grid:     mustParse(t, "..\n.."),
		Renderer: renderer,
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("creating maze: %v", err)
	}
	m.Show()
	if err := m.Reset(Position{Col: 0, Row: 0}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	m.Move(MoveRight)
	m.Draw()
	m.Move(MoveDown)
	m.Draw()

	file := path.Join(t.TempDir(), "game.png")
	if err := renderer.Save(file); err != nil {
		t.Fatalf("saving image: %v", err)
	}
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty image at %s", file)
	}
}
