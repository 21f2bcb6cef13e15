package allergen

import (
	"regexp"
	"strings"
)

// matcher 單一禁用成分預先展開的比對資料
type matcher struct {
	phrases  []string   // 正規化後的別名片語
	words    [][]string // 每個片語拆出的字詞
	patterns []*regexp.Regexp
}

// newMatcher 依禁用成分名稱建立比對器，名稱空白時回傳 nil
func newMatcher(prohibitedName string) *matcher {
	name := Normalize(prohibitedName)
	if name == "" {
		return nil
	}

	aliases := GetAliases(name)
	m := &matcher{
		phrases:  make([]string, 0, len(aliases)),
		words:    make([][]string, 0, len(aliases)),
		patterns: patternTable[name],
	}
	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		m.phrases = append(m.phrases, alias)
		m.words = append(m.words, strings.Fields(alias))
	}
	return m
}

// matches 判斷單一成分字串是否含有此禁用成分
func (m *matcher) matches(productText string) bool {
	if m == nil {
		return false
	}

	normalized := Normalize(productText)
	productWords := strings.Fields(normalized)

	// 字詞層級雙向包含
	for _, aliasWords := range m.words {
		for _, aw := range aliasWords {
			for _, pw := range productWords {
				if wordsMatch(aw, pw) {
					return true
				}
			}
		}
	}

	// 完整片語出現在成分字串中
	if normalized != "" {
		for _, phrase := range m.phrases {
			if strings.Contains(normalized, phrase) {
				return true
			}
		}
	}

	// 樣式比對使用原始字串
	for _, re := range m.patterns {
		if re.MatchString(productText) {
			return true
		}
	}
	return false
}

// wordsMatch 任一字詞為另一方的子字串即相符，寧可誤報也不漏報
func wordsMatch(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ContainsAllergen 判斷成分字串是否含有指定的禁用成分
func ContainsAllergen(productIngredientText, prohibitedName string) bool {
	return newMatcher(prohibitedName).matches(productIngredientText)
}
