// Package naming normalizes player-supplied display names.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/NiltersBot_Go/internal/domain"
)

// DisplayName picks the first usable candidate (platform username, then first
// name, ...) and normalizes it. Falls back to "player-<id>".
func DisplayName(playerID int64, candidates ...string) string {
	for _, c := range candidates {
		if name := Normalize(c); name != "" {
			return name
		}
	}
	return Fallback(playerID)
}

// Fallback is the name used when a player offers no printable name.
func Fallback(playerID int64) string {
	return fmt.Sprintf("player-%d", playerID)
}

// Normalize applies NFKC, drops control and format characters, collapses
// whitespace runs and truncates to domain.MaxDisplayNameLength runes.
func Normalize(name string) string {
	name = norm.NFKC.String(name)

	var b strings.Builder
	b.Grow(len(name))
	space := false
	runes := 0
	for _, r := range name {
		if runes >= domain.MaxDisplayNameLength {
			break
		}
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
			continue
		case unicode.IsControl(r), unicode.In(r, unicode.Cf):
			continue
		}
		if space {
			if runes+1 >= domain.MaxDisplayNameLength {
				break
			}
			b.WriteRune(' ')
			runes++
			space = false
		}
		b.WriteRune(r)
		runes++
	}
	return b.String()
}
