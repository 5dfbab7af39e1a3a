// Package backup mirrors relational rows into a secondary MongoDB
// store. The mirror is write-only from the application's point of
// view; restores are an operational concern.
package backup

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/storefront-go/ecommerce-api/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

const (
	productsCollection = "products_backup"
	ordersCollection   = "orders_backup"
	reviewsCollection  = "reviews_backup"
)

// Service writes entity snapshots into per-entity collections. A nil
// *Service is valid and turns every backup into a no-op.
type Service struct {
	db *mongo.Database
}

// NewFromEnv connects using MONGO_URI and MONGO_DB. Returns (nil, nil)
// when MONGO_URI is unset so the mirror can be switched off entirely.
func NewFromEnv(ctx context.Context) (*Service, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "ecommerce"
	}
	return &Service{db: client.Database(dbName)}, nil
}

func (s *Service) BackupProducts(ctx context.Context, products []models.Product) error {
	return s.insert(ctx, productsCollection, toDocs(products))
}

func (s *Service) BackupOrders(ctx context.Context, orders []models.Order) error {
	return s.insert(ctx, ordersCollection, toDocs(orders))
}

func (s *Service) BackupReviews(ctx context.Context, reviews []models.Review) error {
	return s.insert(ctx, reviewsCollection, toDocs(reviews))
}

func (s *Service) insert(ctx context.Context, collection string, docs []interface{}) error {
	if s == nil || len(docs) == 0 {
		return nil
	}
	_, err := s.db.Collection(collection).InsertMany(ctx, docs)
	return err
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}

// RunNightly mirrors products, orders and reviews daily at the given
// fixed hour. Failures are logged and the loop keeps going.
func (s *Service) RunNightly(db *gorm.DB, hour, min int) {
	if s == nil {
		return
	}
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next backup mirror scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if err := s.MirrorAll(context.Background(), db); err != nil {
			log.Printf("❌ Backup mirror failed: %v", err)
		} else {
			log.Println("✅ Backup mirror completed")
		}
	}
}

// MirrorAll snapshots the full products/orders/reviews tables.
func (s *Service) MirrorAll(ctx context.Context, db *gorm.DB) error {
	if s == nil {
		return nil
	}

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return err
	}
	if err := s.BackupProducts(ctx, products); err != nil {
		return err
	}

	var orders []models.Order
	if err := db.Preload("Items").Find(&orders).Error; err != nil {
		return err
	}
	if err := s.BackupOrders(ctx, orders); err != nil {
		return err
	}

	var reviews []models.Review
	if err := db.Find(&reviews).Error; err != nil {
		return err
	}
	return s.BackupReviews(ctx, reviews)
}
