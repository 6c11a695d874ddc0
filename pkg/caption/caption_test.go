package caption

import "testing"

func TestStyleMerged(t *testing.T) {
	tests := []struct {
		name  string
		in    Style
		check func(t *testing.T, got Style)
	}{
		{
			name: "zero style gets all defaults",
			in:   Style{},
			check: func(t *testing.T, got Style) {
				if got != DefaultStyle {
					t.Errorf("merged zero style = %+v; want defaults", got)
				}
			},
		},
		{
			name: "set fields survive",
			in:   Style{TextColor: "#ffcc00", FontSize: 40},
			check: func(t *testing.T, got Style) {
				if got.TextColor != "#ffcc00" {
					t.Errorf("TextColor = %q; want #ffcc00", got.TextColor)
				}
				if got.FontSize != 40 {
					t.Errorf("FontSize = %d; want 40", got.FontSize)
				}
				if got.Font != DefaultStyle.Font {
					t.Errorf("Font = %q; want default", got.Font)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, tc.in.merged())
		})
	}
}
