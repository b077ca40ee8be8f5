package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

const (
	patternsCollection = "patterns"

	// listPatternsCap bounds unpaginated pattern listings.
	listPatternsCap = 100
)

// PatternRepository implements ports.PatternRepository on MongoDB.
type PatternRepository struct {
	coll *mongo.Collection
}

func NewPatternRepository(db *mongo.Database) *PatternRepository {
	return &PatternRepository{coll: db.Collection(patternsCollection)}
}

type patternDoc struct {
	ID         string `bson:"id"`
	OrderID    string `bson:"order_id"`
	Stage      string `bson:"stage"`
	Slot       int    `bson:"slot"`
	FileID     string `bson:"file_id"`
	Filename   string `bson:"filename"`
	UploadedBy string `bson:"uploaded_by"`
	UploadedAt string `bson:"uploaded_at"`
}

func toPatternDoc(p *domain.Pattern) patternDoc {
	return patternDoc{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Stage:      string(p.Stage),
		Slot:       p.Slot,
		FileID:     p.FileID,
		Filename:   p.Filename,
		UploadedBy: p.UploadedBy,
		UploadedAt: domain.FormatTime(p.UploadedAt),
	}
}

func (d patternDoc) toDomain() *domain.Pattern {
	return &domain.Pattern{
		ID:         d.ID,
		OrderID:    d.OrderID,
		Stage:      domain.Stage(d.Stage),
		Slot:       d.Slot,
		FileID:     d.FileID,
		Filename:   d.Filename,
		UploadedBy: d.UploadedBy,
		UploadedAt: parseTimeOrZero(d.UploadedAt),
	}
}

func (r *PatternRepository) Insert(ctx context.Context, p *domain.Pattern) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toPatternDoc(p)); err != nil {
		return fmt.Errorf("insert pattern: %w", err)
	}
	return nil
}

func (r *PatternRepository) FindByID(ctx context.Context, id string) (*domain.Pattern, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d patternDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatternNotFound
		}
		return nil, fmt.Errorf("find pattern: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PatternRepository) ListByOrder(ctx context.Context, orderID string, stage domain.Stage) ([]*domain.Pattern, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"order_id": orderID}
	if stage != "" {
		filter["stage"] = string(stage)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetLimit(listPatternsCap))
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer cur.Close(ctx)

	var patterns []*domain.Pattern
	for cur.Next(ctx) {
		var d patternDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode pattern: %w", err)
		}
		patterns = append(patterns, d.toDomain())
	}
	return patterns, cur.Err()
}

func (r *PatternRepository) CountByOrderIDs(ctx context.Context, orderIDs []string) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"order_id": bson.M{"$in": orderIDs}})
	if err != nil {
		return 0, fmt.Errorf("count patterns: %w", err)
	}
	return n, nil
}

func (r *PatternRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete pattern: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPatternNotFound
	}
	return nil
}

func (r *PatternRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("delete patterns by order: %w", err)
	}
	return nil
}
