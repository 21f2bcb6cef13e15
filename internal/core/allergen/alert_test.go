package allergen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeAlert_TrailMixDanger(t *testing.T) {
	matches := []AllergenMatch{
		{ProhibitedIngredient: "peanuts", FoundIn: []string{"Roasted Peanuts"}, Severity: 9},
	}
	alert := ComposeAlert(matches, "Trail Mix")

	assert.Equal(t, ClassDanger, alert.SeverityClass)
	assert.Equal(t, 9, alert.HighestSeverity)
	assert.Contains(t, alert.Title, "SEVERE ALLERGY ALERT")
	assert.Contains(t, alert.Message, "Trail Mix")
	assert.Contains(t, alert.Message, "peanuts")
	assert.Contains(t, alert.Message, dangerWarning)
	assert.Equal(t, matches, alert.Matches)
}

func TestComposeAlert_Warning(t *testing.T) {
	matches := []AllergenMatch{
		{ProhibitedIngredient: "milk", FoundIn: []string{"Whey"}, Severity: 7},
		{ProhibitedIngredient: "soy", FoundIn: []string{"Soy Lecithin"}, Severity: 2},
	}
	alert := ComposeAlert(matches, "Protein Bar")

	assert.Equal(t, ClassWarning, alert.SeverityClass)
	assert.Equal(t, 7, alert.HighestSeverity)
	assert.Equal(t, "Allergy Alert", alert.Title)
	assert.Contains(t, alert.Message, "Protein Bar contains ingredients you avoid: milk, soy.")
	assert.NotContains(t, alert.Message, dangerWarning)
}

func TestComposeAlert_ThresholdIsEight(t *testing.T) {
	assert.Equal(t, ClassDanger, ComposeAlert([]AllergenMatch{{ProhibitedIngredient: "x", Severity: 8}}, "F").SeverityClass)
	assert.Equal(t, ClassWarning, ComposeAlert([]AllergenMatch{{ProhibitedIngredient: "x", Severity: 7}}, "F").SeverityClass)
}

func TestComposeAlert_HighestSeverityIsMaxRegardlessOfOrder(t *testing.T) {
	alert := ComposeAlert([]AllergenMatch{
		{ProhibitedIngredient: "a", Severity: 3},
		{ProhibitedIngredient: "b", Severity: 8},
		{ProhibitedIngredient: "c", Severity: 5},
	}, "Soup")
	assert.Equal(t, 8, alert.HighestSeverity)
}

func TestComposeAlert_ReasonsDeduplicated(t *testing.T) {
	alert := ComposeAlert([]AllergenMatch{
		{ProhibitedIngredient: "milk", Severity: 5, Reason: "doctor's advice"},
		{ProhibitedIngredient: "eggs", Severity: 4, Reason: "doctor's advice"},
		{ProhibitedIngredient: "soy", Severity: 3, Reason: " "},
		{ProhibitedIngredient: "wheat", Severity: 3, Reason: "celiac"},
	}, "Pancakes")

	require.Equal(t, 1, strings.Count(alert.Message, "doctor's advice"))
	assert.Contains(t, alert.Message, "Reason: doctor's advice; celiac")
}

func TestComposeAlert_BlankFoodName(t *testing.T) {
	alert := ComposeAlert([]AllergenMatch{{ProhibitedIngredient: "milk", Severity: 5}}, "  ")
	assert.True(t, strings.HasPrefix(alert.Message, "This product contains"))
}

func TestSeverityLabel(t *testing.T) {
	tests := map[int]string{
		10: "EMERGENCY", 9: "EMERGENCY",
		8: "HIGH RISK", 7: "HIGH RISK",
		6: "MODERATE", 5: "MODERATE",
		4: "LOW RISK", 1: "LOW RISK", 0: "LOW RISK",
	}
	for severity, want := range tests {
		assert.Equal(t, want, SeverityLabel(severity), "severity %d", severity)
	}
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, ColorEmergency, SeverityColor(9))
	assert.Equal(t, ColorHighRisk, SeverityColor(7))
	assert.Equal(t, ColorModerate, SeverityColor(5))
	assert.Equal(t, ColorLowRisk, SeverityColor(4))
}

func TestClassFor(t *testing.T) {
	assert.Equal(t, ClassDanger, ClassFor(10))
	assert.Equal(t, ClassDanger, ClassFor(8))
	assert.Equal(t, ClassWarning, ClassFor(7))
}
