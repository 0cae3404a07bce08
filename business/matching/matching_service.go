package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"eventify/domain"
	"eventify/pkg/logger"
)

// ---- Repository interfaces ----

// ProviderCatalog is the read-only view of the provider profiles. The
// implementation applies the eligibility predicates (active, role-verified,
// not suspended, non-empty category set) in the query.
type ProviderCatalog interface {
	FindEligible(ctx context.Context) ([]domain.Provider, error)
}

// MatchCache is an optional short-lived cache of ranked results, keyed by
// the canonical category set. A nil cache disables caching.
type MatchCache interface {
	Get(ctx context.Context, key string) ([]domain.ContractorMatch, bool, error)
	Set(ctx context.Context, key string, matches []domain.ContractorMatch) error
}

// ---- Usecase / Service ----

type MatchingService struct {
	catalog    ProviderCatalog
	cache      MatchCache
	cfgRepo    ConfigRepository
	defaultCfg Config
}

func NewMatchingService(
	catalog ProviderCatalog,
	cache MatchCache,
	cfgRepo ConfigRepository,
	defaultCfg Config,
) *MatchingService {
	return &MatchingService{
		catalog:    catalog,
		cache:      cache,
		cfgRepo:    cfgRepo,
		defaultCfg: defaultCfg,
	}
}

// Match filters, scores, and ranks providers against the requested service
// categories. Read-only; no side effects beyond the optional cache fill.
func (s *MatchingService) Match(
	ctx context.Context,
	requirements []domain.ServiceRequirement,
) ([]domain.ContractorMatch, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories := normalizeCategories(requirements)
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no service categories to match", domain.ErrInvalidInput)
	}

	cacheKey := strings.Join(categories, ",")
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			CacheHitsTotal.Inc()
			return cached, nil
		}
	}

	providers, err := s.catalog.FindEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load provider catalog: %v", domain.ErrUpstreamUnavailable, err)
	}

	cfg := s.loadConfig(ctx)

	matches := make([]domain.ContractorMatch, 0, len(providers))
	for _, p := range providers {
		matched := matchedCategories(p, categories)
		if len(matched) == 0 {
			// no overlap at all: dropped, not scored low
			continue
		}

		score := scoreProvider(cfg, p, len(matched), len(categories))

		matches = append(matches, domain.ContractorMatch{
			ProviderID:          p.ID,
			ProviderName:        p.DisplayName,
			ServiceCategory:     matched[0],
			Score:               score,
			EstimatedPriceRange: estimatePriceRange(p.Offerings, matched),
			Available:           true,
			Rating:              p.Rating,
			ReviewCount:         p.ReviewCount,
		})
	}

	// stable keeps catalog fetch order on ties, so identical inputs rank
	// identically
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > cfg.MaxResults {
		matches = matches[:cfg.MaxResults]
	}

	logger.Debug("matching_search",
		"categories", categories,
		"eligible_providers", len(providers),
		"matches", len(matches),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, matches); err != nil {
			logger.Warn("failed to cache match results", "error", err)
		}
	}

	MatchesServedTotal.Add(float64(len(matches)))

	return matches, nil
}

// normalizeCategories lower-cases, trims, and deduplicates the requested
// categories. Sorted so that the result (and the cache key) is independent
// of request order.
func normalizeCategories(requirements []domain.ServiceRequirement) []string {
	seen := make(map[string]struct{}, len(requirements))
	out := make([]string, 0, len(requirements))

	for _, req := range requirements {
		c := strings.ToLower(strings.TrimSpace(req.Category))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	sort.Strings(out)
	return out
}

// matchedCategories returns the requested categories this provider declares,
// in request (sorted) order.
func matchedCategories(p domain.Provider, categories []string) []string {
	declared := make(map[string]struct{}, len(p.Categories))
	for _, c := range p.Categories {
		declared[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	var matched []string
	for _, c := range categories {
		if _, ok := declared[c]; ok {
			matched = append(matched, c)
		}
	}
	return matched
}
