package pricing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
	"github.com/mamadbah2/recipecalc/internal/engine"
	"github.com/mamadbah2/recipecalc/internal/repository"
)

// Exporter receives evaluation summaries, e.g. a spreadsheet.
type Exporter interface {
	ExportEvaluation(ctx context.Context, eval models.Evaluation, at time.Time) error
}

// Service owns the live price table snapshot and the recipe list, persists
// both through a repository.Store, and evaluates recipes with the engine.
type Service struct {
	store    repository.Store
	exporter Exporter
	snapshot *engine.Snapshot
	cache    *gocache.Cache
	logger   *zap.Logger
	now      func() time.Time

	// writeMu serialises mutations end to end, storage writes included.
	writeMu sync.Mutex
	// mu guards recipes and keeps cache writes ordered with flushes.
	mu      sync.RWMutex
	recipes []models.Recipe
}

// NewService wires a new pricing service. exporter may be nil; a zero
// cacheTTL disables the evaluation cache.
func NewService(store repository.Store, exporter Exporter, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	var cache *gocache.Cache
	if cacheTTL > 0 {
		cache = gocache.New(cacheTTL, 2*cacheTTL)
	}

	return &Service{
		store:    store,
		exporter: exporter,
		snapshot: engine.NewSnapshot(),
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Reload reads both documents from the store and publishes them.
func (s *Service) Reload(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var (
		rows    []models.IngredientSource
		recipes []models.Recipe
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.LoadIngredients(gctx)
		if err != nil {
			return fmt.Errorf("load ingredients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recipes, err = s.store.LoadRecipes(gctx)
		if err != nil {
			return fmt.Errorf("load recipes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	table := s.snapshot.Replace(rows)
	s.setRecipes(recipes)

	s.logger.Info("catalogue loaded",
		zap.Int("ingredients", table.Len()),
		zap.Int("recipes", len(recipes)),
		zap.Uint64("table_version", table.Version()))
	return nil
}

// Table returns the price table currently in use.
func (s *Service) Table() *engine.PriceTable {
	return s.snapshot.Load()
}

// Ingredients returns the ingredient rows of the live table.
func (s *Service) Ingredients() []models.IngredientSource {
	return s.Table().Sources()
}

// ReplaceIngredients stores rows as the whole ingredient document and
// rebuilds the table from them.
func (s *Service) ReplaceIngredients(ctx context.Context, rows []models.IngredientSource) error {
	normalized := make([]models.IngredientSource, 0, len(rows))
	for i, row := range rows {
		src, err := NormalizeIngredient(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		normalized = append(normalized, src)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.publishIngredients(ctx, normalized)
}

// AddIngredient appends one row and rebuilds the table. An existing entry
// with the same name is shadowed, not removed. The stored row is returned.
func (s *Service) AddIngredient(ctx context.Context, src models.IngredientSource) (models.IngredientSource, error) {
	src, err := NormalizeIngredient(src)
	if err != nil {
		return models.IngredientSource{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows := append(s.Table().Sources(), src)
	if err := s.publishIngredients(ctx, rows); err != nil {
		return models.IngredientSource{}, err
	}

	s.logger.Info("ingredient added", zap.String("name", src.Name), zap.String("category", src.Category))
	return src, nil
}

// MergeIngredients upserts rows by name into the ingredient document: the
// last existing row with a matching name is overwritten, unknown names are
// appended. It returns how many rows changed.
func (s *Service) MergeIngredients(ctx context.Context, rows []models.IngredientSource) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Table().Sources()
	index := make(map[string]int, len(current))
	for i, row := range current {
		index[row.Name] = i
	}

	changed := 0
	for _, row := range rows {
		src, err := NormalizeIngredient(row)
		if err != nil {
			s.logger.Debug("skip merged ingredient", zap.Error(err))
			continue
		}

		if i, ok := index[src.Name]; ok {
			if current[i] == src {
				continue
			}
			current[i] = src
		} else {
			index[src.Name] = len(current)
			current = append(current, src)
		}
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	if err := s.publishIngredients(ctx, current); err != nil {
		return 0, err
	}
	return changed, nil
}

// CheckMissing returns the ingredient names in lines that have no entry in
// the live table.
func (s *Service) CheckMissing(lines []models.IngredientLine) []string {
	return engine.MissingIngredients(lines, s.Table())
}

// Recipes returns the stored recipes whose name contains search, ignoring
// case. An empty search returns all of them.
func (s *Service) Recipes(search string) []models.Recipe {
	needle := strings.ToLower(strings.TrimSpace(search))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// Recipe returns the stored recipe called name.
func (s *Service) Recipe(name string) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.findLocked(name)
	if !ok {
		return models.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	return r.Clone(), nil
}

// ReplaceRecipes stores recipes as the whole recipe document.
func (s *Service) ReplaceRecipes(ctx context.Context, recipes []models.Recipe) error {
	normalized := make([]models.Recipe, 0, len(recipes))
	seen := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		n, err := NormalizeRecipe(r)
		if err != nil {
			return err
		}
		if _, dup := seen[n.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRecipe, n.Name)
		}
		seen[n.Name] = struct{}{}
		normalized = append(normalized, n)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.publishRecipes(ctx, normalized)
}

// AddRecipe validates r, refuses it while any ingredient is unknown, and
// appends it to the recipe document. A *MissingIngredientsError is returned
// when ingredients need to be created first.
func (s *Service) AddRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	recipe, err := NormalizeRecipe(r)
	if err != nil {
		return models.Recipe{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if missing := s.CheckMissing(recipe.Ingredients); len(missing) > 0 {
		return models.Recipe{}, &MissingIngredientsError{Names: missing}
	}

	s.mu.RLock()
	_, exists := s.findLocked(recipe.Name)
	next := make([]models.Recipe, len(s.recipes), len(s.recipes)+1)
	copy(next, s.recipes)
	s.mu.RUnlock()

	if exists {
		return models.Recipe{}, fmt.Errorf("%w: %s", ErrDuplicateRecipe, recipe.Name)
	}

	if err := s.publishRecipes(ctx, append(next, recipe)); err != nil {
		return models.Recipe{}, err
	}

	s.logger.Info("recipe added", zap.String("name", recipe.Name), zap.Int("ingredients", len(recipe.Ingredients)))
	return recipe.Clone(), nil
}

// DeleteRecipe removes the recipe called name.
func (s *Service) DeleteRecipe(ctx context.Context, name string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := make([]models.Recipe, 0, len(s.recipes))
	found := false
	for _, r := range s.recipes {
		if r.Name == name {
			found = true
			continue
		}
		next = append(next, r)
	}
	s.mu.RUnlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	if err := s.publishRecipes(ctx, next); err != nil {
		return err
	}

	s.logger.Info("recipe deleted", zap.String("name", name))
	return nil
}

// Evaluate returns the evaluation of the stored recipe called name against
// the live table.
func (s *Service) Evaluate(name string) (models.Evaluation, error) {
	table := s.Table()
	key := fmt.Sprintf("%d/%s", table.Version(), name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.(models.Evaluation).Clone(), nil
		}
	}

	r, ok := s.findLocked(name)
	if !ok {
		return models.Evaluation{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}

	eval := engine.Evaluate(r, table)
	if s.cache != nil {
		s.cache.SetDefault(key, eval.Clone())
	}
	return eval, nil
}

// EvaluateRecipe evaluates an unsaved recipe against the live table. The
// recipe goes through the same normalization as a saved one.
func (s *Service) EvaluateRecipe(r models.Recipe) (models.Evaluation, error) {
	recipe, err := NormalizeRecipe(r)
	if err != nil {
		return models.Evaluation{}, err
	}
	return engine.Evaluate(recipe, s.Table()), nil
}

// Breakdown returns the raw resale detail of the stored recipe at tier.
func (s *Service) Breakdown(name string, tier models.Tier) (models.Breakdown, error) {
	if !tier.Valid() {
		return models.Breakdown{}, fmt.Errorf("%w: %d", models.ErrUnknownTier, int(tier))
	}

	r, err := s.Recipe(name)
	if err != nil {
		return models.Breakdown{}, err
	}
	return engine.Breakdown(r.Ingredients, s.Table(), tier), nil
}

// ExportEvaluation sends the evaluation of the stored recipe to the exporter.
func (s *Service) ExportEvaluation(ctx context.Context, name string) error {
	if s.exporter == nil {
		return ErrExportDisabled
	}

	eval, err := s.Evaluate(name)
	if err != nil {
		return err
	}
	if err := s.exporter.ExportEvaluation(ctx, eval, s.now()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailed, name, err)
	}
	return nil
}

// publishIngredients persists rows and then swaps the snapshot. Callers hold
// writeMu.
func (s *Service) publishIngredients(ctx context.Context, rows []models.IngredientSource) error {
	if err := s.store.SaveIngredients(ctx, rows); err != nil {
		return fmt.Errorf("save ingredients: %w", err)
	}
	table := s.snapshot.Replace(rows)
	s.logger.Debug("price table rebuilt", zap.Int("ingredients", table.Len()), zap.Uint64("table_version", table.Version()))
	return nil
}

// publishRecipes persists recipes and then swaps the in-memory list. Callers
// hold writeMu.
func (s *Service) publishRecipes(ctx context.Context, recipes []models.Recipe) error {
	if err := s.store.SaveRecipes(ctx, recipes); err != nil {
		return fmt.Errorf("save recipes: %w", err)
	}
	s.setRecipes(recipes)
	return nil
}

func (s *Service) setRecipes(recipes []models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes = recipes
	if s.cache != nil {
		s.cache.Flush()
	}
}

func (s *Service) findLocked(name string) (models.Recipe, bool) {
	for _, r := range s.recipes {
		if r.Name == name {
			return r, true
		}
	}
	return models.Recipe{}, false
}
