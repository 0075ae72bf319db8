package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/infrastructure/cache"
	"github.com/trazia/backend/internal/usecase"
)

const serviceVersion = "1.0.0"

// CacheStats is implemented by caches that report hit/miss counters
type CacheStats interface {
	Stats() cache.Stats
}

// HandlerConfig holds optional handler dependencies
type HandlerConfig struct {
	ReferenceIntakes domain.ReferenceIntakes
	Cache            CacheStats
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	labeling  *usecase.LabelingService
	catalog   domain.ProfileSource
	retention domain.RetentionTable
	intakes   domain.ReferenceIntakes
	cache     CacheStats
}

// NewHandler creates a new HTTP handler. catalog may be nil when no USDA
// API key is configured; product endpoints then answer 503.
func NewHandler(
	labeling *usecase.LabelingService,
	catalog domain.ProfileSource,
	retention domain.RetentionTable,
	config HandlerConfig,
) *Handler {
	intakes := config.ReferenceIntakes
	if intakes == nil {
		intakes = domain.DefaultReferenceIntakes()
	}
	return &Handler{
		labeling:  labeling,
		catalog:   catalog,
		retention: retention,
		intakes:   intakes,
		cache:     config.Cache,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service":          "trazia-backend",
		"version":          serviceVersion,
		"catalogEnabled":   h.catalog != nil,
		"retentionMethods": len(h.retentionMethods()),
	}
	if h.cache != nil {
		body["cache"] = h.cache.Stats()
	}
	c.JSON(http.StatusOK, body)
}

// ListRegions returns the formatting rules of every supported region
func (h *Handler) ListRegions(c *gin.Context) {
	regions := make([]domain.RegionRules, 0, len(domain.AllRegions))
	for _, region := range domain.AllRegions {
		rules, err := region.Rules()
		if err != nil {
			respondError(c, err)
			return
		}
		regions = append(regions, rules)
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

// ListRetentionMethods returns the processing methods with retention factors
func (h *Handler) ListRetentionMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.retentionMethods()})
}

func (h *Handler) retentionMethods() []string {
	if h.retention == nil {
		return []string{}
	}
	return h.retention.Methods()
}

// AggregateNutrients combines ingredient lines into one per-100 g profile
func (h *Handler) AggregateNutrients(c *gin.Context) {
	var req AggregateRequest
	if !bindJSON(c, &req) {
		return
	}

	aggregate, mass, err := usecase.AggregateNutrients(req.IngredientLines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AggregateResponse{Aggregate: aggregate, TotalIngredientMass: mass})
}

// NormalizeProfile re-expresses a profile on another basis
func (h *Handler) NormalizeProfile(c *gin.Context) {
	var req NormalizeRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.TargetBasisGrams.Valid {
		respondError(c, fmt.Errorf("%w: targetBasisGrams is required", domain.ErrInvalidServingSize))
		return
	}

	profile, err := usecase.NormalizeProfile(req.Profile, req.TargetBasisGrams.Decimal, req.SourceBasisGrams.Decimal,
		usecase.ScaleOptions{ZeroFill: req.ZeroFill})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// DailyValues expresses a profile as percentages of the reference intakes
func (h *Handler) DailyValues(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Profile.Validate(); err != nil {
		respondError(c, err)
		return
	}

	dv, err := usecase.ComputeDailyValuesWith(req.Profile, h.intakes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DailyValuesResponse{DailyValues: dv})
}

// ApplyRetention adjusts one nutrient amount for a processing method
func (h *Handler) ApplyRetention(c *gin.Context) {
	var req RetentionRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.InitialAmount.Valid || req.InitialAmount.Decimal.IsNegative() {
		respondError(c, fmt.Errorf("%w: initialAmount must be a non-negative number", domain.ErrInvalidRequest))
		return
	}
	fraction := decimal.NewFromInt(1)
	if req.FinalYieldFraction.Valid {
		fraction = req.FinalYieldFraction.Decimal
	}

	adjusted, err := usecase.ApplyRetention(h.retention, req.Nutrient, req.ProcessingMethod, req.InitialAmount.Decimal, fraction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RetentionResponse{
		Nutrient:         req.Nutrient,
		ProcessingMethod: req.ProcessingMethod,
		AdjustedAmount:   adjusted,
	})
}

// ComputeCosting returns recipe cost metrics and yield loss
func (h *Handler) ComputeCosting(c *gin.Context) {
	var req CostingRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := usecase.ComputeCosting(req.IngredientLines, req.DeclaredYieldGrams)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CostingResponse{Costing: *result, Display: result.Display()})
}

// GenerateLabel runs the full labeling pipeline for a recipe
func (h *Handler) GenerateLabel(c *gin.Context) {
	var req LabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labeling.GenerateLabel(c.Request.Context(), usecase.LabelRequest{
		Recipe: req.Recipe,
		Region: req.Region,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

// GetProductProfile returns the per-100 g profile of a FoodData Central product
func (h *Handler) GetProductProfile(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, fmt.Errorf("%w: no USDA API key configured", domain.ErrCatalogUnavailable))
		return
	}

	product, err := h.catalog.GetProductProfile(c.Request.Context(), c.Param("fdcId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// bindJSON decodes the request body, answering 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return false
	}
	return true
}
