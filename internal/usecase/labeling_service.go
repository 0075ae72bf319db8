package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/log"
	"github.com/trazia/backend/internal/units"
)

// LabelingServiceConfig holds configuration for the labeling service
type LabelingServiceConfig struct {
	DefaultRegion    domain.LabelingRegion
	ReferenceIntakes domain.ReferenceIntakes
}

// LabelingService composes aggregation, conversion, retention, daily values
// and costing into a label-ready result
type LabelingService struct {
	retention     domain.RetentionTable
	catalog       domain.ProfileSource
	defaultRegion domain.LabelingRegion
	intakes       domain.ReferenceIntakes
}

// NewLabelingService creates a labeling service. catalog may be nil, in
// which case every ingredient line must carry its own profile.
func NewLabelingService(
	retention domain.RetentionTable,
	catalog domain.ProfileSource,
	config LabelingServiceConfig,
) *LabelingService {
	region := config.DefaultRegion
	if region == "" {
		region = domain.RegionEU
	}
	intakes := config.ReferenceIntakes
	if intakes == nil {
		intakes = domain.DefaultReferenceIntakes()
	}

	return &LabelingService{
		retention:     retention,
		catalog:       catalog,
		defaultRegion: region,
		intakes:       intakes,
	}
}

// LabelRequest asks for the label of a recipe in a region. An empty
// Region falls back to the service default.
type LabelRequest struct {
	Recipe domain.Recipe
	Region string
}

// NutritionPanel is one quantity column of a label
type NutritionPanel struct {
	Basis        domain.LabelBasis   `json:"basis"`
	BasisGrams   decimal.Decimal     `json:"basisGrams"`
	EnergyKcal   decimal.NullDecimal `json:"energyKcal"`
	EnergyKJ     decimal.NullDecimal `json:"energyKj"`
	Fat          decimal.NullDecimal `json:"fat"`
	SaturatedFat decimal.NullDecimal `json:"saturatedFat"`
	Carbohydrate decimal.NullDecimal `json:"carbohydrate"`
	Sugars       decimal.NullDecimal `json:"sugars"`
	Fiber        decimal.NullDecimal `json:"fiber"`
	Protein      decimal.NullDecimal `json:"protein"`
	Salt         decimal.NullDecimal `json:"salt"`
	Sodium       decimal.NullDecimal `json:"sodium"`
	SodiumUnit   string              `json:"sodiumUnit,omitempty"`
}

// Label is the engine output consumed by label rendering
type Label struct {
	RecipeName          string                 `json:"recipeName"`
	Rules               domain.RegionRules     `json:"rules"`
	DeclaredYieldGrams  decimal.Decimal        `json:"declaredYieldGrams"`
	TotalIngredientMass decimal.Decimal        `json:"totalIngredientMass"`
	ProcessingMethod    string                 `json:"processingMethod,omitempty"`
	IngredientAggregate domain.NutrientProfile `json:"ingredientAggregate"`
	Per100g             *NutritionPanel        `json:"per100g,omitempty"`
	PerServing          *NutritionPanel        `json:"perServing,omitempty"`
	DailyValueBasis     domain.LabelBasis      `json:"dailyValueBasis"`
	DailyValues         domain.NutrientProfile `json:"dailyValues"`
	Costing             domain.CostingResult   `json:"costing"`
	IngredientStatement []string               `json:"ingredientStatement"`
	Allergens           []string               `json:"allergens"`
}

// GenerateLabel runs the full pipeline for one recipe
func (s *LabelingService) GenerateLabel(ctx context.Context, req LabelRequest) (*Label, error) {
	rules, err := s.resolveRules(req.Region)
	if err != nil {
		return nil, err
	}

	recipe := req.Recipe
	if err := recipe.ValidateYield(); err != nil {
		return nil, err
	}
	yield := recipe.DeclaredYieldGrams.Decimal

	serving := recipe.ServingSizeGrams
	if serving.Valid && !serving.Decimal.IsPositive() {
		return nil, fmt.Errorf("%w: serving size must be positive, got %s",
			domain.ErrInvalidServingSize, serving.Decimal.String())
	}
	if rules.RequiresServing() && !serving.Valid {
		return nil, fmt.Errorf("%w: region %s labels per serving and needs a serving size",
			domain.ErrInvalidServingSize, rules.Region)
	}

	lines, err := s.resolveLines(ctx, recipe.IngredientLines)
	if err != nil {
		return nil, err
	}
	// lines mixing sodium-only and salt-only profiles must agree before
	// they are averaged, or the known side masks the other
	for i := range lines {
		lines[i].Profile = WithDerivedSodium(WithDerivedSalt(lines[i].Profile))
	}

	aggregate, totalMass, err := AggregateNutrients(lines)
	if err != nil {
		return nil, err
	}

	per100g, err := YieldBasisProfile(aggregate, totalMass, yield)
	if err != nil {
		return nil, err
	}

	method := strings.TrimSpace(recipe.ProcessingMethod)
	if method != "" {
		// the declared yield already accounts for mass change, so only the
		// nutrient-specific factor applies here
		per100g, err = ApplyRetentionToProfile(s.retention, per100g, method, decimal.NewFromInt(1))
		if err != nil {
			return nil, fmt.Errorf("recipe %q: %w", recipe.Name, err)
		}
		per100g = RoundProfile(per100g, profileScale)
	}
	per100g = WithDerivedSalt(per100g)

	label := &Label{
		RecipeName:          recipe.Name,
		Rules:               rules,
		DeclaredYieldGrams:  yield,
		TotalIngredientMass: totalMass,
		ProcessingMethod:    method,
		IngredientAggregate: aggregate,
		IngredientStatement: IngredientStatement(lines),
		Allergens:           AllergenUnion(lines),
	}

	primary := per100g
	label.DailyValueBasis = domain.BasisPer100g
	if rules.HasPer100g() {
		label.Per100g = buildPanel(per100g, domain.BasisPer100g, hundred, rules)
	}
	if rules.SupportsServing() && serving.Valid {
		perServing, err := ScaleToBasis(per100g, serving.Decimal, hundred, ScaleOptions{})
		if err != nil {
			return nil, err
		}
		label.PerServing = buildPanel(perServing, domain.BasisPerServing, serving.Decimal, rules)
		if rules.RequiresServing() {
			primary = perServing
			label.DailyValueBasis = domain.BasisPerServing
		}
	}

	label.DailyValues, err = ComputeDailyValuesWith(primary, s.intakes)
	if err != nil {
		return nil, err
	}

	costing, err := ComputeCosting(lines, recipe.DeclaredYieldGrams)
	if err != nil {
		return nil, err
	}
	label.Costing = costing.Display()

	log.Debug(ctx, "label generated",
		"recipe", recipe.Name,
		"region", rules.Region,
		"lines", len(lines),
		"total_mass_g", totalMass.String(),
		"yield_g", yield.String(),
		"processing", method,
	)
	return label, nil
}

func (s *LabelingService) resolveRules(name string) (domain.RegionRules, error) {
	if strings.TrimSpace(name) == "" {
		return s.defaultRegion.Rules()
	}
	return domain.ResolveRegionRules(name)
}

// resolveLines fills missing profiles from the catalog. The caller's slice
// is never modified.
func (s *LabelingService) resolveLines(ctx context.Context, lines []domain.IngredientLine) ([]domain.IngredientLine, error) {
	resolved := make([]domain.IngredientLine, len(lines))
	copy(resolved, lines)

	for i, line := range resolved {
		if line.FdcID == "" || !line.Profile.IsEmpty() {
			continue
		}
		if s.catalog == nil {
			return nil, &domain.IngredientError{
				Index:        i,
				DisplayOrder: line.DisplayOrder,
				Field:        "fdcId",
				Err:          domain.ErrCatalogUnavailable,
			}
		}
		product, err := s.catalog.GetProductProfile(ctx, line.FdcID)
		if err != nil {
			return nil, &domain.IngredientError{
				Index:        i,
				DisplayOrder: line.DisplayOrder,
				Field:        "fdcId",
				Err:          err,
			}
		}
		resolved[i].Profile = product.Profile
		if resolved[i].Name == "" {
			resolved[i].Name = product.Description
		}
	}
	return resolved, nil
}

// buildPanel projects a profile onto the fields a region prints
func buildPanel(profile domain.NutrientProfile, basis domain.LabelBasis, basisGrams decimal.Decimal, rules domain.RegionRules) *NutritionPanel {
	panel := &NutritionPanel{
		Basis:        basis,
		BasisGrams:   basisGrams,
		EnergyKcal:   profile.Energy,
		Fat:          profile.Fat,
		SaturatedFat: profile.SaturatedFat,
		Carbohydrate: profile.Carbohydrate,
		Sugars:       profile.Sugars,
		Fiber:        profile.Fiber,
		Protein:      profile.Protein,
	}
	if rules.ShowKilojoules && profile.Energy.Valid {
		panel.EnergyKJ = decimal.NewNullDecimal(units.KilojoulesFromKilocalories(profile.Energy.Decimal))
	}
	if rules.ShowSalt {
		panel.Salt = profile.Salt
	}
	if rules.ShowSodium {
		panel.SodiumUnit = rules.SodiumUnit
		panel.Sodium = profile.Sodium
		if profile.Sodium.Valid && rules.SodiumUnit == "mg" {
			panel.Sodium = decimal.NewNullDecimal(units.GramsToMilligrams(profile.Sodium.Decimal))
		}
	}
	return panel
}

// IngredientStatement lists ingredients by descending quantity, ties
// broken by display order, each with its allergens
func IngredientStatement(lines []domain.IngredientLine) []string {
	ordered := make([]domain.IngredientLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		if c := ordered[i].QuantityGrams.Cmp(ordered[j].QuantityGrams); c != 0 {
			return c > 0
		}
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	statement := make([]string, 0, len(ordered))
	for _, line := range ordered {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			name = "Unknown ingredient"
		}
		entry := fmt.Sprintf("%s - %sg", name, line.QuantityGrams.String())
		if len(line.Allergens) > 0 {
			entry += " (Allergens: " + strings.Join(line.Allergens, ", ") + ")"
		}
		statement = append(statement, entry)
	}
	return statement
}

// AllergenUnion returns the distinct allergens of all lines in display
// order, compared case-insensitively
func AllergenUnion(lines []domain.IngredientLine) []string {
	ordered := make([]domain.IngredientLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	seen := make(map[string]bool)
	allergens := []string{}
	for _, line := range ordered {
		for _, a := range line.Allergens {
			a = strings.TrimSpace(a)
			key := strings.ToLower(a)
			if a == "" || seen[key] {
				continue
			}
			seen[key] = true
			allergens = append(allergens, a)
		}
	}
	return allergens
}
