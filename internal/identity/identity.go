// Package identity maps internal numeric author ids to display usernames.
package identity

import (
	"strings"

	"github.com/gitpulse-cli/gitpulse/internal/model"
)

// Roster maps author ids to usernames. Lookups for ids absent from the
// roster resolve to the "Unknown" sentinel, never an error.
type Roster struct {
	byID map[int64]string
}

// Build constructs a roster from member records. Records missing either the
// numeric id or the nested username are skipped silently. When stripEmoji is
// set, emoji runes are removed from usernames before storing.
func Build(members []model.Member, stripEmoji bool) *Roster {
	byID := make(map[int64]string, len(members))
	for _, m := range members {
		if m.UserID == nil || m.User == nil || m.User.Username == "" {
			continue
		}
		username := m.User.Username
		if stripEmoji {
			username = StripEmoji(username)
		}
		byID[*m.UserID] = username
	}
	return &Roster{byID: byID}
}

// Resolve returns the username for id, or "Unknown" when id is nil or not
// in the roster.
func (r *Roster) Resolve(id *int64) string {
	if id == nil {
		return model.UnknownAuthor
	}
	if username, ok := r.byID[*id]; ok {
		return username
	}
	return model.UnknownAuthor
}

// Len reports the number of resolvable ids.
func (r *Roster) Len() int { return len(r.byID) }

// emoji code-point ranges, including variation selectors and regional
// indicators.
var emojiRanges = [][2]rune{
	{0x1F000, 0x1F02F}, // mahjong, dominoes
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport & map
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA00, 0x1FAFF}, // extended-A
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
	{0xFE00, 0xFE0F},   // variation selectors
	{0x2190, 0x21FF},   // arrows
	{0x2B00, 0x2BFF},   // arrows & symbols
}

// StripEmoji removes emoji runes from s, leaving all other characters
// (including non-ASCII letters) intact.
func StripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}
