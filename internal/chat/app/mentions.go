package app

import (
	"regexp"
	"strings"
	"unicode"
)

// mentionRefPattern structured mention token,例如 "<@u-123>"
var mentionRefPattern = regexp.MustCompile(`<@([^>\s]+)>`)

// MentionsUser 檢查訊息內容是否 mention 指定 user
// structured reference (<@userID>) 或 plain-text @name 皆算命中
func MentionsUser(content, userID, userName string) bool {
	for _, m := range mentionRefPattern.FindAllStringSubmatch(content, -1) {
		if m[1] == userID {
			return true
		}
	}
	return containsNameMention(content, userName)
}

// containsNameMention 大小寫不敏感的 @name 比對,後面必須是詞界
func containsNameMention(content, name string) bool {
	if name == "" {
		return false
	}
	lowered := strings.ToLower(content)
	target := "@" + strings.ToLower(name)

	idx := 0
	for {
		i := strings.Index(lowered[idx:], target)
		if i < 0 {
			return false
		}
		end := idx + i + len(target)
		if end >= len(lowered) || isWordBreak(rune(lowered[end])) {
			return true
		}
		idx = end
	}
}

func isWordBreak(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
}
