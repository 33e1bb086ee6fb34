package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/laserstudio/storefront/internal/core/domain"
)

const (
	collectionCategories = "categories"
	collectionProducts   = "products"
	collectionPortfolio  = "portfolio"
)

type CatalogRepository struct {
	categories *mongo.Collection
	products   *mongo.Collection
	portfolio  *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		categories: db.Collection(collectionCategories),
		products:   db.Collection(collectionProducts),
		portfolio:  db.Collection(collectionPortfolio),
	}
}

type categoryDoc struct {
	Key   string `bson:"key"`
	Label string `bson:"label"`
	Pos   int    `bson:"pos"`
}

type productDoc struct {
	ProductID   string  `bson:"product_id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Price       float64 `bson:"price"`
	Category    string  `bson:"category"`
	ImageRef    string  `bson:"image_url"`
	Pos         int     `bson:"pos"`
}

type portfolioDoc struct {
	ItemID      string  `bson:"item_id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Category    *string `bson:"category,omitempty"`
	ClientName  *string `bson:"client_name,omitempty"`
	ImageRef    string  `bson:"image_url"`
	Pos         int     `bson:"pos"`
}

// Categories returns categories in insertion order.
func (r *CatalogRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	var docs []categoryDoc
	if err := findAll(ctx, r.categories, &docs); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Category{Key: d.Key, Label: d.Label})
	}
	return out, nil
}

func (r *CatalogRepository) Products(ctx context.Context) ([]domain.Product, error) {
	var docs []productDoc
	if err := findAll(ctx, r.products, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Product{
			ID:          d.ProductID,
			Title:       d.Title,
			Description: d.Description,
			Price:       d.Price,
			Category:    d.Category,
			ImageRef:    d.ImageRef,
		})
	}
	return out, nil
}

func (r *CatalogRepository) Portfolio(ctx context.Context) ([]domain.PortfolioItem, error) {
	var docs []portfolioDoc
	if err := findAll(ctx, r.portfolio, &docs); err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	out := make([]domain.PortfolioItem, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.PortfolioItem{
			ID:          d.ItemID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			ClientName:  d.ClientName,
			ImageRef:    d.ImageRef,
		})
	}
	return out, nil
}

// Seed fills each empty collection from catalog. Populated collections are
// left alone.
func (r *CatalogRepository) Seed(ctx context.Context, catalog domain.Catalog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	categories := make([]any, 0, len(catalog.Categories))
	for i, c := range catalog.Categories {
		categories = append(categories, categoryDoc{Key: c.Key, Label: c.Label, Pos: i})
	}
	products := make([]any, 0, len(catalog.Products))
	for i, p := range catalog.Products {
		products = append(products, productDoc{
			ProductID:   p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			ImageRef:    p.ImageRef,
			Pos:         i,
		})
	}
	portfolio := make([]any, 0, len(catalog.Portfolio))
	for i, p := range catalog.Portfolio {
		portfolio = append(portfolio, portfolioDoc{
			ItemID:      p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			ClientName:  p.ClientName,
			ImageRef:    p.ImageRef,
			Pos:         i,
		})
	}

	for _, s := range []struct {
		coll *mongo.Collection
		docs []any
	}{
		{r.categories, categories},
		{r.products, products},
		{r.portfolio, portfolio},
	} {
		if err := seedIfEmpty(ctx, s.coll, s.docs); err != nil {
			return err
		}
	}
	return nil
}

func seedIfEmpty(ctx context.Context, coll *mongo.Collection, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	n, err := coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	if n > 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed %s: %w", coll.Name(), err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "pos", Value: 1}}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	return cur.All(ctx, out)
}
