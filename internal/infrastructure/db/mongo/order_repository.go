package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

const ordersCollection = "orders"

// OrderRepository implements ports.OrderRepository on MongoDB.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

// orderDoc is the at-rest shape of an order. All timestamps are ISO-8601
// strings; stage dates stay empty until first decided.
type orderDoc struct {
	ID                    string `bson:"id"`
	OrderNumber           string `bson:"order_number"`
	GoogleSheetLink       string `bson:"google_sheet_link"`
	FinalMeasurementsLink string `bson:"final_measurements_link,omitempty"`
	CreatedBy             string `bson:"created_by"`
	CreatedAt             string `bson:"created_at"`
	InitialPatternDate    string `bson:"initial_pattern_date,omitempty"`
	InitialPatternStatus  string `bson:"initial_pattern_status,omitempty"`
	InitialPatternsDone   bool   `bson:"initial_patterns_done"`
	SecondPatternStatus   string `bson:"second_pattern_status,omitempty"`
	SecondPatternDate     string `bson:"second_pattern_date,omitempty"`
	ApprovedPatternStatus string `bson:"approved_pattern_status,omitempty"`
	ApprovedPatternDate   string `bson:"approved_pattern_date,omitempty"`
}

func toOrderDoc(o *domain.Order) orderDoc {
	return orderDoc{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		GoogleSheetLink:       o.GoogleSheetLink,
		FinalMeasurementsLink: o.FinalMeasurementsLink,
		CreatedBy:             o.CreatedBy,
		CreatedAt:             domain.FormatTime(o.CreatedAt),
		InitialPatternDate:    o.InitialPatternDate,
		InitialPatternStatus:  string(o.InitialPatternStatus),
		InitialPatternsDone:   o.InitialPatternsDone,
		SecondPatternStatus:   string(o.SecondPatternStatus),
		SecondPatternDate:     o.SecondPatternDate,
		ApprovedPatternStatus: string(o.ApprovedPatternStatus),
		ApprovedPatternDate:   o.ApprovedPatternDate,
	}
}

func (d orderDoc) toDomain() *domain.Order {
	return &domain.Order{
		ID:                    d.ID,
		OrderNumber:           d.OrderNumber,
		GoogleSheetLink:       d.GoogleSheetLink,
		FinalMeasurementsLink: d.FinalMeasurementsLink,
		CreatedBy:             d.CreatedBy,
		CreatedAt:             parseTimeOrZero(d.CreatedAt),
		InitialPatternDate:    d.InitialPatternDate,
		InitialPatternStatus:  domain.StageStatus(d.InitialPatternStatus),
		InitialPatternsDone:   d.InitialPatternsDone,
		SecondPatternStatus:   domain.StageStatus(d.SecondPatternStatus),
		SecondPatternDate:     d.SecondPatternDate,
		ApprovedPatternStatus: domain.StageStatus(d.ApprovedPatternStatus),
		ApprovedPatternDate:   d.ApprovedPatternDate,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toOrderDoc(order)); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return d.toDomain(), nil
}

// List returns every order, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListCreatedSince relies on the fixed-width domain.TimeLayout strings, whose
// lexicographic order is chronological.
func (r *OrderRepository) ListCreatedSince(ctx context.Context, from time.Time) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{"created_at": bson.M{"$gte": domain.FormatTime(from)}})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	for cur.Next(ctx) {
		var d orderDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, d.toDomain())
	}
	return orders, cur.Err()
}

func (r *OrderRepository) UpdateMeta(ctx context.Context, id string, update ports.OrderMetaUpdate) error {
	set := bson.M{}
	if update.OrderNumber != nil {
		set["order_number"] = *update.OrderNumber
	}
	if update.GoogleSheetLink != nil {
		set["google_sheet_link"] = *update.GoogleSheetLink
	}
	if update.FinalMeasurementsLink != nil {
		set["final_measurements_link"] = *update.FinalMeasurementsLink
	}
	return r.updateOne(ctx, id, set)
}

func (r *OrderRepository) SetStageDecision(ctx context.Context, id string, stage domain.Stage, status domain.StageStatus, date string, stampDate bool) error {
	var statusField, dateField string
	switch stage {
	case domain.StageInitial:
		statusField, dateField = "initial_pattern_status", "initial_pattern_date"
	case domain.StageSecond:
		statusField, dateField = "second_pattern_status", "second_pattern_date"
	case domain.StageApproved:
		statusField, dateField = "approved_pattern_status", "approved_pattern_date"
	default:
		return domain.ErrInvalidStage
	}

	set := bson.M{statusField: string(status)}
	if stampDate {
		set[dateField] = date
	}
	return r.updateOne(ctx, id, set)
}

func (r *OrderRepository) SetInitialPatternDate(ctx context.Context, id string, date string) error {
	return r.updateOne(ctx, id, bson.M{"initial_pattern_date": date})
}

func (r *OrderRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
