package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizocrm/internal/models"
)

type promoterDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Code      string             `bson:"code"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d promoterDocument) toModel() models.Promoter {
	return models.Promoter{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Code:      d.Code,
		Email:     d.Email,
		Phone:     d.Phone,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
	}
}

type MongoPromoterRepository struct {
	col *mongo.Collection
}

func NewMongoPromoterRepository(db *mongo.Database) *MongoPromoterRepository {
	return &MongoPromoterRepository{col: db.Collection(promotersCollection)}
}

func (r *MongoPromoterRepository) Create(ctx context.Context, p *models.Promoter) (string, error) {
	res, err := r.col.InsertOne(ctx, promoterDocument{
		Name: p.Name, Code: p.Code, Email: p.Email, Phone: p.Phone, Active: p.Active, CreatedAt: p.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("create promoter: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id %v", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *MongoPromoterRepository) GetByID(ctx context.Context, id string) (*models.Promoter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc promoterDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get promoter: %w", err)
	}
	p := doc.toModel()
	return &p, nil
}

func (r *MongoPromoterRepository) List(ctx context.Context) ([]models.Promoter, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list promoters: %w", err)
	}
	var docs []promoterDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list promoters: %w", err)
	}
	out := make([]models.Promoter, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (r *MongoPromoterRepository) SetActive(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"active": active}}); err != nil {
		return fmt.Errorf("set promoter active: %w", err)
	}
	return nil
}
