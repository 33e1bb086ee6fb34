package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/laserstudio/storefront/internal/core/domain"
)

const (
	collectionOrders   = "orders"
	collectionContacts = "contacts"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(collectionOrders)}
}

type orderLineDoc struct {
	ProductID string `bson:"product_id"`
	Qty       int    `bson:"qty"`
}

type orderDoc struct {
	OrderID      string         `bson:"order_id"`
	UserEmail    string         `bson:"user_email"`
	Items        []orderLineDoc `bson:"items"`
	Notes        string         `bson:"notes,omitempty"`
	ContactPhone string         `bson:"contact_phone,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.PlacedOrder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	items := make([]orderLineDoc, 0, len(order.Lines))
	for _, l := range order.Lines {
		items = append(items, orderLineDoc{ProductID: l.ProductID, Qty: l.Quantity})
	}

	_, err := r.coll.InsertOne(ctx, orderDoc{
		OrderID:      order.ID,
		UserEmail:    order.UserEmail,
		Items:        items,
		Notes:        order.Notes,
		ContactPhone: order.ContactPhone,
		CreatedAt:    order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(collectionContacts)}
}

type contactDoc struct {
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, contactDoc{
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}
