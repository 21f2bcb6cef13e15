package allergen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckForAllergens_PeanutButter(t *testing.T) {
	got := CheckForAllergens(
		[]string{"Water", "Sugar", "Peanut Butter", "Salt"},
		[]ProhibitedIngredient{{Name: "peanuts", Severity: 9}},
	)
	assert.Equal(t, []AllergenMatch{
		{ProhibitedIngredient: "peanuts", FoundIn: []string{"Peanut Butter"}, Severity: 9},
	}, got)
}

func TestCheckForAllergens_DairyNotSoy(t *testing.T) {
	got := CheckForAllergens(
		[]string{"Milk", "Whey", "Cocoa"},
		[]ProhibitedIngredient{{Name: "dairy", Severity: 6}, {Name: "soy", Severity: 4}},
	)
	assert.Equal(t, []AllergenMatch{
		{ProhibitedIngredient: "dairy", FoundIn: []string{"Milk", "Whey"}, Severity: 6},
	}, got)
}

func TestCheckForAllergens_EmptyInputs(t *testing.T) {
	profile := []ProhibitedIngredient{{Name: "milk", Severity: 5}}

	got := CheckForAllergens([]string{}, profile)
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, CheckForAllergens(nil, profile))
	assert.Empty(t, CheckForAllergens([]string{"Milk"}, nil))
	assert.Empty(t, CheckForAllergens([]string{"Milk"}, []ProhibitedIngredient{}))
}

func TestCheckForAllergens_BlankNamesSkipped(t *testing.T) {
	got := CheckForAllergens(
		[]string{"Milk", "", "   ", "Sugar"},
		[]ProhibitedIngredient{{Name: "", Severity: 10}, {Name: "   ", Severity: 10}, {Name: "?!", Severity: 10}},
	)
	assert.Empty(t, got)
}

func TestCheckForAllergens_SortedBySeverityStable(t *testing.T) {
	got := CheckForAllergens(
		[]string{"Wheat Flour", "Milk", "Egg", "Soy Lecithin", "Sesame Seeds"},
		[]ProhibitedIngredient{
			{Name: "soy", Severity: 3},
			{Name: "milk", Severity: 7},
			{Name: "sesame", Severity: 3},
			{Name: "eggs", Severity: 10},
			{Name: "wheat", Severity: 7},
		},
	)
	require.Len(t, got, 5)

	names := make([]string, 0, len(got))
	for _, m := range got {
		names = append(names, m.ProhibitedIngredient)
	}
	assert.Equal(t, []string{"eggs", "milk", "wheat", "soy", "sesame"}, names)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Severity, got[i].Severity)
	}
}

func TestCheckForAllergens_FoundInKeepsOriginalTextAndDedupes(t *testing.T) {
	got := CheckForAllergens(
		[]string{"WHEY Protein (Milk)", "Skim Milk", "WHEY Protein (Milk)", "Salt"},
		[]ProhibitedIngredient{{Name: "Milk", Severity: 5, Reason: "lactose intolerance"}},
	)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"WHEY Protein (Milk)", "Skim Milk"}, got[0].FoundIn)
	assert.Equal(t, "Milk", got[0].ProhibitedIngredient)
	assert.Equal(t, "lactose intolerance", got[0].Reason)
}

func TestCheckForAllergens_ExactNamesNeverMissed(t *testing.T) {
	names := []string{"milk", "Peanuts", "kiwi", "Shellfish", "tree nuts", "MSG", "e", "Sulphites"}
	for _, n := range names {
		product := []string{"Water", toMixedCase(n), "Salt"}
		got := CheckForAllergens(product, []ProhibitedIngredient{{Name: n, Severity: 5}})
		require.Len(t, got, 1, "name %q", n)
		assert.Equal(t, n, got[0].ProhibitedIngredient)
		assert.NotEmpty(t, got[0].FoundIn)
	}
}

func TestCheckForAllergens_AliasSymmetry(t *testing.T) {
	got := CheckForAllergens(
		[]string{"whey protein"},
		[]ProhibitedIngredient{{Name: "milk", Severity: 5}, {Name: "dairy", Severity: 5}},
	)
	require.Len(t, got, 2)
	assert.Equal(t, "milk", got[0].ProhibitedIngredient)
	assert.Equal(t, "dairy", got[1].ProhibitedIngredient)
}

func TestCheckForAllergens_ConcurrentCalls(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := CheckForAllergens(
				[]string{"Water", "Sugar", "Peanut Butter", "Salt"},
				[]ProhibitedIngredient{{Name: "peanuts", Severity: 9}},
			)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()
}

func toMixedCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		if i%2 == 0 && r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out)
}
