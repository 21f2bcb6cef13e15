package allergen

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// 非單字字元與非空白字元
var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Normalize 將成分或過敏原名稱轉為可比較的標準形式
// 轉小寫、去除重音、移除標點並合併連續空白
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = stripAccents(strings.ToLower(s))
	s = nonWordPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// stripAccents NFD 分解後移除組合重音符號
func stripAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
