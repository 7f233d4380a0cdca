package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Suchbegriffe mit LIKE-Metazeichen müssen wörtlich matchen, genauso wie der
// In-Memory-Treiber es tut.
func TestLikeEscape_EntschaerftMetazeichen(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"V-2024-001", "V-2024-001"},
		{"50%", `50\%`},
		{"K_1", `K\_1`},
		{`a\b`, `a\\b`},
		{`100%_\`, `100\%\_\\`},
		{"Müller & Söhne", "Müller & Söhne"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, likeEscape(tc.in), "eingabe %q", tc.in)
	}
}
