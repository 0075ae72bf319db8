package retention

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
)

//go:embed retention_factors.json
var bundledFactors []byte

type key struct {
	nutrient string
	method   string
}

// Table is the in-memory retention factor lookup. It is built once and
// never mutated, so concurrent readers need no locking.
type Table struct {
	factors map[key]decimal.Decimal
	methods []string
}

// Load builds the table from the JSON file at path, or from the bundled
// resource when path is empty. Any problem with the resource is a
// startup configuration error.
func Load(path string) (*Table, error) {
	data := bundledFactors
	source := "bundled retention_factors.json"
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read retention factors %s: %v", domain.ErrStartupConfiguration, path, err)
		}
		data = raw
		source = path
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return table, nil
}

// fileRow mirrors one JSON row; Fraction is a pointer so a missing factor
// is caught instead of decoding to zero
type fileRow struct {
	Nutrient         string           `json:"nutrient"`
	ProcessingMethod string           `json:"processingMethod"`
	Fraction         *decimal.Decimal `json:"retentionFactor"`
	Description      string           `json:"description"`
}

// Parse decodes a JSON array of retention factor rows
func Parse(data []byte) (*Table, error) {
	var raw []fileRow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode retention factors: %v", domain.ErrStartupConfiguration, err)
	}

	rows := make([]domain.RetentionFactor, 0, len(raw))
	for i, r := range raw {
		if r.Fraction == nil {
			return nil, fmt.Errorf("%w: row %d: retentionFactor is missing for %s/%s",
				domain.ErrStartupConfiguration, i, r.Nutrient, r.ProcessingMethod)
		}
		rows = append(rows, domain.RetentionFactor{
			Nutrient:         r.Nutrient,
			ProcessingMethod: r.ProcessingMethod,
			Fraction:         *r.Fraction,
			Description:      r.Description,
		})
	}
	return New(rows)
}

// New builds a table from rows. Keys are matched case-insensitively;
// blank keys, duplicates and fractions outside [0, 1] are rejected.
func New(rows []domain.RetentionFactor) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: retention factor table is empty", domain.ErrStartupConfiguration)
	}

	factors := make(map[key]decimal.Decimal, len(rows))
	methodSet := make(map[string]bool)
	for i, row := range rows {
		k := makeKey(row.Nutrient, row.ProcessingMethod)
		if k.nutrient == "" || k.method == "" {
			return nil, fmt.Errorf("%w: row %d: nutrient and processing method are required",
				domain.ErrStartupConfiguration, i)
		}
		if row.Fraction.IsNegative() || row.Fraction.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: row %d: retention factor %s for %s/%s is outside [0, 1]",
				domain.ErrStartupConfiguration, i, row.Fraction.String(), row.Nutrient, row.ProcessingMethod)
		}
		if _, dup := factors[k]; dup {
			return nil, fmt.Errorf("%w: row %d: duplicate retention factor for %s/%s",
				domain.ErrStartupConfiguration, i, row.Nutrient, row.ProcessingMethod)
		}
		factors[k] = row.Fraction
		methodSet[k.method] = true
	}

	methods := make([]string, 0, len(methodSet))
	for m := range methodSet {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	return &Table{factors: factors, methods: methods}, nil
}

// Lookup returns the fraction retained for a nutrient under a processing method
func (t *Table) Lookup(nutrient, processingMethod string) (decimal.Decimal, error) {
	factor, ok := t.factors[makeKey(nutrient, processingMethod)]
	if !ok {
		return decimal.Zero, &domain.RetentionLookupError{
			Nutrient:         nutrient,
			ProcessingMethod: processingMethod,
		}
	}
	return factor, nil
}

// Methods lists the processing methods present in the table, sorted
func (t *Table) Methods() []string {
	out := make([]string, len(t.methods))
	copy(out, t.methods)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.factors)
}

func makeKey(nutrient, method string) key {
	return key{
		nutrient: strings.ToLower(strings.TrimSpace(nutrient)),
		method:   strings.ToLower(strings.TrimSpace(method)),
	}
}
