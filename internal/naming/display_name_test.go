package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/NiltersBot_Go/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hero", "hero"},
		{"trims and collapses", "  dark   knight \t", "dark knight"},
		{"drops control chars", "bad\x00name\x07", "badname"},
		{"drops zero width", "zero\u200bwidth", "zerowidth"},
		{"nfkc folds fullwidth", "ｈｅｒｏ", "hero"},
		{"keeps emoji", "🐉 slayer", "🐉 slayer"},
		{"only spaces", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Truncates(t *testing.T) {
	got := Normalize(strings.Repeat("я", 200))
	assert.Equal(t, domain.MaxDisplayNameLength, utf8.RuneCountInString(got))
}

func TestDisplayName_FallsThroughCandidates(t *testing.T) {
	assert.Equal(t, "alice", DisplayName(1, "", " alice "))
	assert.Equal(t, "bob", DisplayName(1, "bob", "robert"))
	assert.Equal(t, "player-77", DisplayName(77, "", "\u200b"))
	assert.Equal(t, "player-5", DisplayName(5))
}
