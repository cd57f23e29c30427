package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// Store keeps the ingredient and recipe documents as files on disk.
// Ingredient files ending in .yaml or .yml are read and written as YAML;
// everything else is JSON.
type Store struct {
	ingredientsPath string
	recipesPath     string
	mu              sync.Mutex
	logger          *zap.Logger
}

// New builds a file store and creates an empty recipe document when none
// exists yet.
func New(ingredientsPath, recipesPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ingredientsPath == "" || recipesPath == "" {
		return nil, errors.New("ingredient and recipe paths must not be empty")
	}

	s := &Store{
		ingredientsPath: ingredientsPath,
		recipesPath:     recipesPath,
		logger:          logger,
	}

	if _, err := os.Stat(recipesPath); errors.Is(err, fs.ErrNotExist) {
		if err := writeAtomic(recipesPath, []byte("[]")); err != nil {
			return nil, fmt.Errorf("create recipe document %s: %w", recipesPath, err)
		}
		logger.Info("created empty recipe document", zap.String("path", recipesPath))
	} else if err != nil {
		return nil, fmt.Errorf("stat recipe document %s: %w", recipesPath, err)
	}

	return s, nil
}

// LoadIngredients reads the ingredient document. A missing file is an empty
// catalogue.
func (s *Store) LoadIngredients(ctx context.Context) ([]models.IngredientSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read(s.ingredientsPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		s.logger.Warn("ingredient document not found", zap.String("path", s.ingredientsPath))
		return nil, nil
	}

	var rows []models.IngredientSource
	if isYAML(s.ingredientsPath) {
		err = yaml.Unmarshal(data, &rows)
	} else {
		err = json.Unmarshal(data, &rows)
	}
	if err != nil {
		return nil, fmt.Errorf("decode ingredient document %s: %w", s.ingredientsPath, err)
	}
	return rows, nil
}

// SaveIngredients replaces the ingredient document.
func (s *Store) SaveIngredients(ctx context.Context, rows []models.IngredientSource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rows == nil {
		rows = []models.IngredientSource{}
	}

	var (
		data []byte
		err  error
	)
	if isYAML(s.ingredientsPath) {
		data, err = yaml.Marshal(rows)
	} else {
		data, err = encodeJSON(rows)
	}
	if err != nil {
		return fmt.Errorf("encode ingredient document: %w", err)
	}

	return s.write(s.ingredientsPath, data)
}

// LoadRecipes reads the recipe document.
func (s *Store) LoadRecipes(ctx context.Context) ([]models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read(s.recipesPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("decode recipe document %s: %w", s.recipesPath, err)
	}
	return recipes, nil
}

// SaveRecipes replaces the recipe document.
func (s *Store) SaveRecipes(ctx context.Context, recipes []models.Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	data, err := encodeJSON(recipes)
	if err != nil {
		return fmt.Errorf("encode recipe document: %w", err)
	}
	return s.write(s.recipesPath, data)
}

func (s *Store) read(path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func (s *Store) write(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("document written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// documentMode is the permission set of written documents.
const documentMode = 0o644

// writeAtomic writes to a temp file in the target directory and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(documentMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
