package theme

import "testing"

func TestResolveFallsBackToDefault(t *testing.T) {
	s := Resolve("missing", "")
	if s.Frame != Default().Frame {
		t.Fatalf("expected default frame for unknown theme")
	}
}

func TestResolveTakesTitleFromHeaderTheme(t *testing.T) {
	contrast, ok := Named("contrast")
	if !ok {
		t.Fatalf("expected contrast theme")
	}
	s := Resolve(DefaultName, "contrast")
	if s.Title != contrast.Title {
		t.Fatalf("expected title style from header theme")
	}
	if s.Frame != Default().Frame {
		t.Fatalf("expected frame from the base theme")
	}
	if Default().Title == contrast.Title {
		t.Fatalf("resolving must not modify the registered default")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "contrast" || names[1] != DefaultName {
		t.Fatalf("unexpected theme names %v", names)
	}
}
