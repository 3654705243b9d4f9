package fonts

import "testing"

func TestFace(t *testing.T) {
	for _, style := range []Style{Regular, Bold} {
		t.Run(style.String(), func(t *testing.T) {
			face, err := Face(style, 14)
			if err != nil {
				t.Fatalf("Face() error: %v", err)
			}
			defer face.Close()

			m := face.Metrics()
			if m.Height <= 0 {
				t.Errorf("line height = %v, want > 0", m.Height)
			}
			if _, ok := face.GlyphAdvance('K'); !ok {
				t.Error("face has no glyph for 'K'")
			}
		})
	}
}

func TestFaceUnknownStyle(t *testing.T) {
	if _, err := Face(Style(42), 14); err == nil {
		t.Error("Face(42) should fail")
	}
}

func TestPointsToPixels(t *testing.T) {
	if got := PointsToPixels(72); got != DPI {
		t.Errorf("PointsToPixels(72) = %v, want %v", got, DPI)
	}
}
