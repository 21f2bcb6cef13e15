package allergen

import (
	"sort"
)

// CheckForAllergens 比對產品成分與所有禁用成分
// 結果依嚴重度由高至低排序，同分時保留輸入順序
func CheckForAllergens(productIngredients []string, prohibited []ProhibitedIngredient) []AllergenMatch {
	matches := []AllergenMatch{}
	if len(productIngredients) == 0 || len(prohibited) == 0 {
		return matches
	}

	for _, p := range prohibited {
		m := newMatcher(p.Name)
		if m == nil {
			continue
		}

		var foundIn []string
		seen := make(map[string]struct{})
		for _, ingredient := range productIngredients {
			if _, dup := seen[ingredient]; dup {
				continue
			}
			if m.matches(ingredient) {
				seen[ingredient] = struct{}{}
				foundIn = append(foundIn, ingredient)
			}
		}

		if len(foundIn) == 0 {
			continue
		}
		matches = append(matches, AllergenMatch{
			ProhibitedIngredient: p.Name,
			FoundIn:              foundIn,
			Severity:             p.Severity,
			Reason:               p.Reason,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Severity > matches[j].Severity
	})
	return matches
}
