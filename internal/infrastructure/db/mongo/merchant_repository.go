package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

const merchantCollection = "merchants"

type MerchantRepository struct {
	coll *mongo.Collection
}

func NewMerchantRepository(db *mongo.Database) *MerchantRepository {
	return &MerchantRepository{coll: db.Collection(merchantCollection)}
}

type mongoMerchant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email,omitempty"`
	PasswordHash   string             `bson:"password_hash"`
	Role           string             `bson:"role"`
	CustomerNumber string             `bson:"customer_number,omitempty"`
	ContractID     string             `bson:"contract_id,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (r *MerchantRepository) Create(ctx context.Context, m *domain.Merchant) (*domain.Merchant, error) {
	doc := mongoMerchant{
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           m.Role,
		CustomerNumber: m.CustomerNumber,
		ContractID:     m.ContractID,
		CreatedAt:      m.CreatedAt.Unix(),
		UpdatedAt:      m.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMerchantExists
		}
		return nil, fmt.Errorf("insert merchant: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *MerchantRepository) FindByUsername(ctx context.Context, username string) (*domain.Merchant, error) {
	var mm mongoMerchant
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	return mm.toDomain(), nil
}

// EnsureIndexes makes usernames unique.
func (r *MerchantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (mm mongoMerchant) toDomain() *domain.Merchant {
	return &domain.Merchant{
		ID:             mm.ID.Hex(),
		Username:       mm.Username,
		Email:          mm.Email,
		PasswordHash:   mm.PasswordHash,
		Role:           mm.Role,
		CustomerNumber: mm.CustomerNumber,
		ContractID:     mm.ContractID,
		CreatedAt:      unixToTime(mm.CreatedAt),
		UpdatedAt:      unixToTime(mm.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
