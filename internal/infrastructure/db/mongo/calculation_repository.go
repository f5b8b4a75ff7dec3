package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

const calculationCollection = "calculations"

type MongoCalculationRepository struct {
	coll *mongo.Collection
}

func NewCalculationRepository(db *mongo.Database) *MongoCalculationRepository {
	return &MongoCalculationRepository{coll: db.Collection(calculationCollection)}
}

type calculationDoc struct {
	ID        string  `bson:"_id"`
	Operation string  `bson:"operation"`
	A         float64 `bson:"a"`
	B         float64 `bson:"b"`
	Result    float64 `bson:"result"`
	UserID    string  `bson:"user_id,omitempty"`
	CreatedAt int64   `bson:"created_at"`
	UpdatedAt int64   `bson:"updated_at"`
}

func toCalculationDoc(c *domain.Calculation) calculationDoc {
	doc := calculationDoc{
		ID:        c.ID.String(),
		Operation: string(c.Operation),
		A:         c.A,
		B:         c.B,
		Result:    c.Result,
		CreatedAt: c.CreatedAt.Unix(),
		UpdatedAt: c.UpdatedAt.Unix(),
	}
	if c.UserID != nil {
		doc.UserID = c.UserID.String()
	}
	return doc
}

func (d calculationDoc) toDomain() (*domain.Calculation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse calculation id %q: %w", d.ID, err)
	}

	var userID *uuid.UUID
	if d.UserID != "" {
		uid, err := uuid.Parse(d.UserID)
		if err != nil {
			return nil, fmt.Errorf("parse calculation user id %q: %w", d.UserID, err)
		}
		userID = &uid
	}

	return &domain.Calculation{
		ID:        id,
		Operation: domain.Operation(d.Operation),
		A:         d.A,
		B:         d.B,
		Result:    d.Result,
		UserID:    userID,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}, nil
}

func (r *MongoCalculationRepository) Insert(ctx context.Context, calc *domain.Calculation) error {
	if _, err := r.coll.InsertOne(ctx, toCalculationDoc(calc)); err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

func (r *MongoCalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Calculation, error) {
	var doc calculationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCalculationNotFound
		}
		return nil, fmt.Errorf("get calculation: %w", err)
	}
	return doc.toDomain()
}

func (r *MongoCalculationRepository) List(ctx context.Context, filter ports.ListCalculationsFilter) ([]*domain.Calculation, int64, error) {
	query := bson.M{}
	if filter.Operation != "" {
		query["operation"] = filter.Operation
	}
	if filter.UserID != nil {
		query["user_id"] = filter.UserID.String()
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count calculations: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := int64(filter.Limit)
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list calculations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []calculationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode calculations: %w", err)
	}

	items := make([]*domain.Calculation, 0, len(docs))
	for _, doc := range docs {
		calc, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, calc)
	}
	return items, total, nil
}

func (r *MongoCalculationRepository) Update(ctx context.Context, calc *domain.Calculation) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": calc.ID.String()}, toCalculationDoc(calc))
	if err != nil {
		return fmt.Errorf("update calculation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCalculationNotFound
	}
	return nil
}

func (r *MongoCalculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCalculationNotFound
	}
	return nil
}
