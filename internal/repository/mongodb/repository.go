package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

const (
	ingredientCollection = "ingredients"
	recipeCollection     = "recipes"
)

// ingredientDocument and recipeDocument carry the position of the row so the
// documents come back in the order they were saved.
type ingredientDocument struct {
	Position                int `bson:"position"`
	models.IngredientSource `bson:",inline"`
}

type recipeDocument struct {
	Position      int `bson:"position"`
	models.Recipe `bson:",inline"`
}

// MongoDBRepository stores the catalogue documents in two collections.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// LoadIngredients returns every ingredient row in saved order.
func (r *MongoDBRepository) LoadIngredients(ctx context.Context) ([]models.IngredientSource, error) {
	var docs []ingredientDocument
	if err := r.findAll(ctx, ingredientCollection, &docs); err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	rows := make([]models.IngredientSource, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, doc.IngredientSource)
	}
	return rows, nil
}

// SaveIngredients replaces the ingredient collection.
func (r *MongoDBRepository) SaveIngredients(ctx context.Context, rows []models.IngredientSource) error {
	docs := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		docs = append(docs, ingredientDocument{Position: i, IngredientSource: row})
	}
	if err := r.replaceAll(ctx, ingredientCollection, docs); err != nil {
		return fmt.Errorf("failed to save ingredients: %w", err)
	}
	return nil
}

// LoadRecipes returns every recipe in saved order.
func (r *MongoDBRepository) LoadRecipes(ctx context.Context) ([]models.Recipe, error) {
	var docs []recipeDocument
	if err := r.findAll(ctx, recipeCollection, &docs); err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, doc.Recipe)
	}
	return recipes, nil
}

// SaveRecipes replaces the recipe collection.
func (r *MongoDBRepository) SaveRecipes(ctx context.Context, recipes []models.Recipe) error {
	docs := make([]interface{}, 0, len(recipes))
	for i, recipe := range recipes {
		docs = append(docs, recipeDocument{Position: i, Recipe: recipe})
	}
	if err := r.replaceAll(ctx, recipeCollection, docs); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) findAll(ctx context.Context, collName string, out interface{}) error {
	collection := r.client.Database(r.dbName).Collection(collName)
	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

// replaceAll drops every document in the collection and inserts docs. Not
// atomic.
func (r *MongoDBRepository) replaceAll(ctx context.Context, collName string, docs []interface{}) error {
	collection := r.client.Database(r.dbName).Collection(collName)
	if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}
