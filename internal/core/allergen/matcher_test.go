package allergen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasTable_EntriesAreNormalized(t *testing.T) {
	for key, aliases := range aliasTable {
		assert.Equal(t, key, Normalize(key), "key %q", key)
		for _, alias := range aliases {
			assert.Equal(t, alias, Normalize(alias), "alias %q of %q", alias, key)
		}
	}
}

func TestAliasTable_KeyIsOwnAlias(t *testing.T) {
	for key, aliases := range aliasTable {
		assert.Contains(t, aliases, key)
	}
}

func TestPatternTable_KeysExistInAliasTable(t *testing.T) {
	for key := range patternTable {
		_, ok := aliasTable[key]
		assert.True(t, ok, "pattern key %q has no alias entry", key)
	}
}

func TestGetAliases(t *testing.T) {
	t.Run("table hit", func(t *testing.T) {
		aliases := GetAliases("milk")
		assert.Contains(t, aliases, "whey")
		assert.Contains(t, aliases, "casein")
		assert.Equal(t, GetAliases("dairy"), aliases)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		aliases := GetAliases("milk")
		aliases[0] = "mutated"
		assert.Equal(t, "milk", GetAliases("milk")[0])
	})

	t.Run("plural fallback", func(t *testing.T) {
		assert.Equal(t, []string{"kiwis", "kiwi"}, GetAliases("kiwis"))
	})

	t.Run("singular fallback", func(t *testing.T) {
		assert.Equal(t, []string{"kiwi", "kiwis"}, GetAliases("kiwi"))
	})

	t.Run("never empty", func(t *testing.T) {
		require.NotEmpty(t, GetAliases(""))
		require.NotEmpty(t, GetAliases("unknownthing"))
	})
}

func TestContainsAllergen(t *testing.T) {
	tests := []struct {
		name       string
		product    string
		prohibited string
		want       bool
	}{
		{"exact", "Peanuts", "peanuts", true},
		{"case varied", "PEANUTS", "Peanuts", true},
		{"plural word", "Peanut Butter", "peanuts", true},
		{"compound word", "peanut-butter-flavored chips", "peanuts", true},
		{"alias", "Whey Protein", "milk", true},
		{"alias via dairy", "Whey Protein", "dairy", true},
		{"multi word alias", "chopped brazil nuts", "tree nuts", true},
		{"unknown name plural", "Dried Kiwis", "kiwi", true},
		{"unrelated", "Sugar", "peanuts", false},
		{"cocoa is not dairy", "Cocoa", "dairy", false},
		{"single letter fragment", "Vitamin A", "peanuts", true},
		{"two letter fragment", "Soft Cheese", "of", true},
		{"short word exact", "E 2", "e", true},
		{"blank name", "Sugar", "   ", false},
		{"empty name", "Sugar", "", false},
		{"empty product", "", "milk", false},
		{"egg prefix pattern", "Ovo-Lacto Blend", "eggs", true},
		{"sulfite e-number pattern", "Preservative (E220)", "sulfites", true},
		{"gluten malt pattern", "Malt Extract", "gluten", true},
		{"fish suffix pattern", "Swordfish", "fish", true},
		{"accent folded", "CREME FRAICHE", "Crème", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsAllergen(tt.product, tt.prohibited))
		})
	}
}

func TestAliasTable_PhraseWordsAreAllergenSpecific(t *testing.T) {
	// 片語中不是單字別名的字，必須是指向過敏原的修飾字
	qualifiers := map[string]bool{"tree": true, "brazil": true}

	for key, aliases := range aliasTable {
		single := make(map[string]bool)
		for _, alias := range aliases {
			if !strings.Contains(alias, " ") {
				single[alias] = true
			}
		}
		for _, alias := range aliases {
			for _, word := range strings.Fields(alias) {
				if single[word] || qualifiers[word] {
					continue
				}
				t.Errorf("alias %q of %q carries generic word %q", alias, key, word)
			}
		}
	}
}

func TestContainsAllergen_CommonIngredientsDoNotTrigger(t *testing.T) {
	tests := []struct {
		product    string
		prohibited string
	}{
		{"Salt", "celery"},
		{"Sunflower Oil", "sesame"},
		{"Baking Powder", "milk"},
		{"White Rice", "egg"},
		{"Pineapple", "tree nuts"},
		{"Soy Sauce", "fish"},
		{"Titanium Dioxide", "sulfites"},
		{"Maple Syrup", "corn"},
		{"Sunflower Seeds", "mustard"},
		{"Water", "celery"},
		{"Sugar", "celery"},
	}
	for _, tt := range tests {
		t.Run(tt.product+"/"+tt.prohibited, func(t *testing.T) {
			assert.False(t, ContainsAllergen(tt.product, tt.prohibited))
		})
	}

	got := CheckForAllergens(
		[]string{"Water", "Sugar", "Peanut Butter", "Salt"},
		[]ProhibitedIngredient{{Name: "celery", Severity: 9}},
	)
	assert.Empty(t, got)
}

func TestContainsAllergen_QualifiedPhrasesStillMatch(t *testing.T) {
	assert.True(t, ContainsAllergen("Celery Salt", "celery"))
	assert.True(t, ContainsAllergen("Toasted Sesame Oil", "sesame"))
	assert.True(t, ContainsAllergen("Skim Milk Powder", "milk"))
	assert.True(t, ContainsAllergen("Pine Nuts", "tree nuts"))
	assert.True(t, ContainsAllergen("Sulphur Dioxide", "sulfites"))
	assert.True(t, ContainsAllergen("Corn Syrup", "corn"))
	assert.True(t, ContainsAllergen("Anchovy Fish Sauce", "fish"))
}

func TestContainsAllergen_PatternUsesOriginalText(t *testing.T) {
	// 正規化會移除連字號與括號，樣式需看到原始字串
	assert.True(t, ContainsAllergen("E-224", "sulphites"))
	assert.True(t, patternTable["sulphites"][0].MatchString("E-224"))
}

func TestWordsMatch(t *testing.T) {
	assert.True(t, wordsMatch("peanut", "peanut"))
	assert.True(t, wordsMatch("peanut", "peanutbutter"))
	assert.True(t, wordsMatch("peanutbutter", "peanut"))
	assert.True(t, wordsMatch("a", "a"))
	assert.True(t, wordsMatch("a", "peanut"))
	assert.True(t, wordsMatch("soft", "of"))
	assert.False(t, wordsMatch("milk", "whey"))
	assert.False(t, wordsMatch("salt", "celery"))
}

func TestKnownAllergenAndPatterns(t *testing.T) {
	assert.True(t, KnownAllergen("Milk"))
	assert.True(t, KnownAllergen(" tree  nuts "))
	assert.False(t, KnownAllergen("kiwi"))

	assert.NotEmpty(t, PatternsFor("eggs"))
	assert.Empty(t, PatternsFor("kiwi"))
	for _, p := range PatternsFor("eggs") {
		assert.Contains(t, p, "(?i)")
	}

	keys := KnownAllergens()
	assert.Contains(t, keys, "milk")
	assert.IsIncreasing(t, keys)
}
