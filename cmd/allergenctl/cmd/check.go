package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"allergen-guard/internal/core/allergen"
	"allergen-guard/internal/core/screening"
	"allergen-guard/internal/pkg/common"

	"github.com/spf13/cobra"
)

type checkOptions struct {
	ingredients string
	file        string
	avoid       []string
	profile     string
	scale       string
	food        string
	failOnMatch bool
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check an ingredient list against an avoid list",
		Example: `  allergenctl check --ingredients "Oats, Peanut Butter" --avoid peanuts:9:anaphylaxis
  allergenctl check --file ingredients.json --profile avoid.json --scale 1-3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ingredients, "ingredients", "", "comma-separated ingredient list")
	f.StringVar(&opts.file, "file", "", "JSON file holding an array of ingredient strings")
	f.StringArrayVar(&opts.avoid, "avoid", nil, "prohibited ingredient as name:severity[:reason] (repeatable)")
	f.StringVar(&opts.profile, "profile", "", "JSON file holding an array of {name, severity, reason}")
	f.StringVar(&opts.scale, "scale", string(allergen.ScaleTen), "severity scale used by the avoid list (1-10 or 1-3)")
	f.StringVar(&opts.food, "food", "", "product name used in the alert message")
	f.BoolVar(&opts.failOnMatch, "fail-on-match", false, "exit with status 2 when any prohibited ingredient is found")

	cmd.MarkFlagsMutuallyExclusive("ingredients", "file")
	cmd.MarkFlagsOneRequired("ingredients", "file")
	cmd.MarkFlagsMutuallyExclusive("avoid", "profile")
	cmd.MarkFlagsOneRequired("avoid", "profile")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	req := &screening.CheckRequest{
		FoodName:      opts.food,
		SeverityScale: opts.scale,
	}

	if opts.file != "" {
		if err := readJSONFile(opts.file, &req.Ingredients); err != nil {
			return fmt.Errorf("ingredients file: %w", err)
		}
	} else {
		req.Ingredients = common.SplitList(opts.ingredients)
	}

	if opts.profile != "" {
		if err := readJSONFile(opts.profile, &req.Prohibited); err != nil {
			return fmt.Errorf("profile file: %w", err)
		}
	} else {
		for _, raw := range opts.avoid {
			p, err := parseAvoid(raw)
			if err != nil {
				return err
			}
			req.Prohibited = append(req.Prohibited, p)
		}
	}

	result, err := newService().Check(cmd.Context(), req)
	if err != nil {
		return err
	}
	if err := printJSON(cmd, result); err != nil {
		return err
	}
	if opts.failOnMatch && !result.Safe {
		return ErrUnsafe
	}
	return nil
}

// parseAvoid parses name:severity[:reason]. The reason may itself contain colons.
func parseAvoid(raw string) (allergen.ProhibitedIngredient, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return allergen.ProhibitedIngredient{}, fmt.Errorf("invalid --avoid %q: want name:severity[:reason]", raw)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return allergen.ProhibitedIngredient{}, fmt.Errorf("invalid --avoid %q: empty name", raw)
	}
	severity, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return allergen.ProhibitedIngredient{}, fmt.Errorf("invalid --avoid %q: severity must be an integer", raw)
	}

	p := allergen.ProhibitedIngredient{Name: name, Severity: severity}
	if len(parts) == 3 {
		p.Reason = strings.TrimSpace(parts[2])
	}
	return p, nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return common.ParseJSONBytesStrict(data, v)
}
