package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"allergen-guard/internal/core/allergen"
	"allergen-guard/internal/core/screening"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheck_Flags(t *testing.T) {
	out, err := run(t, "check",
		"--ingredients", "Oats, Peanut Butter, Raisins",
		"--avoid", "peanuts:9:anaphylaxis: carry epipen",
		"--food", "Trail Mix",
	)
	require.NoError(t, err)

	var res screening.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Safe)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "anaphylaxis: carry epipen", res.Matches[0].Reason)
	assert.Equal(t, allergen.ClassDanger, res.Alert.SeverityClass)
}

func TestCheck_FailOnMatch(t *testing.T) {
	_, err := run(t, "check", "--ingredients", "Whey", "--avoid", "milk:4", "--fail-on-match")
	assert.ErrorIs(t, err, ErrUnsafe)

	out, err := run(t, "check", "--ingredients", "Rice", "--avoid", "milk:4", "--fail-on-match")
	require.NoError(t, err)
	assert.Contains(t, out, `"safe": true`)
}

func TestCheck_Files(t *testing.T) {
	ingredients := writeFile(t, "ingredients.json", `["Milk", "Whey Protein", "Cocoa"]`)
	profile := writeFile(t, "avoid.json", `[{"name": "dairy", "severity": 2, "reason": "lactose intolerance"}]`)

	out, err := run(t, "check", "--file", ingredients, "--profile", profile, "--scale", "1-3")
	require.NoError(t, err)

	var res screening.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Matches, 1)
	assert.Equal(t, []string{"Milk", "Whey Protein"}, res.Matches[0].FoundIn)
	assert.Equal(t, 6, res.Matches[0].Severity)
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing ingredients", []string{"check", "--avoid", "milk:3"}},
		{"missing avoid list", []string{"check", "--ingredients", "Milk"}},
		{"bad avoid format", []string{"check", "--ingredients", "Milk", "--avoid", "milk"}},
		{"bad avoid severity", []string{"check", "--ingredients", "Milk", "--avoid", "milk:high"}},
		{"severity out of scale", []string{"check", "--ingredients", "Milk", "--avoid", "milk:5", "--scale", "1-3"}},
		{"both sources", []string{"check", "--ingredients", "Milk", "--file", "x.json", "--avoid", "milk:3"}},
		{"missing file", []string{"check", "--file", "does-not-exist.json", "--avoid", "milk:3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCheck_ProfileRejectsUnknownFields(t *testing.T) {
	profile := writeFile(t, "avoid.json", `[{"name": "egg", "severity": 5, "level": 3}]`)

	_, err := run(t, "check", "--ingredients", "Egg", "--profile", profile)
	assert.Error(t, err)
}

func TestParseAvoid(t *testing.T) {
	p, err := parseAvoid(" tree nuts : 8 ")
	require.NoError(t, err)
	assert.Equal(t, allergen.ProhibitedIngredient{Name: "tree nuts", Severity: 8}, p)

	_, err = parseAvoid(":5")
	assert.Error(t, err)
}

func TestAliasesCommand(t *testing.T) {
	out, err := run(t, "aliases", "tree", "nuts")
	require.NoError(t, err)

	var info screening.AliasInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "tree nuts", info.Normalized)
	assert.True(t, info.Known)
	assert.Contains(t, info.Aliases, "cashew")

	out, err = run(t, "aliases")
	require.NoError(t, err)
	var list screening.AllergenList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, allergen.KnownAllergens(), list.Allergens)

	_, err = run(t, "aliases", "!!!")
	assert.Error(t, err)
}

func TestSeverityCommand(t *testing.T) {
	out, err := run(t, "severity", "5")
	require.NoError(t, err)
	var info screening.SeverityInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "MODERATE", info.Label)

	out, err = run(t, "severity", "3", "--scale", "1-3")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, 9, info.Severity)
	assert.Equal(t, "EMERGENCY", info.Label)

	_, err = run(t, "severity", "0")
	assert.Error(t, err)
}
