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
	chatsCollection = "chats"

	// listMessagesCap bounds unpaginated thread reads.
	listMessagesCap = 1000
)

// ChatRepository implements ports.ChatRepository on MongoDB.
type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{coll: db.Collection(chatsCollection)}
}

type chatDoc struct {
	ID                string `bson:"id"`
	OrderID           string `bson:"order_id"`
	UserID            string `bson:"user_id"`
	UserName          string `bson:"user_name"`
	Message           string `bson:"message"`
	ImageID           string `bson:"image_id,omitempty"`
	QuotedMessageID   string `bson:"quoted_message_id,omitempty"`
	QuotedMessageText string `bson:"quoted_message_text,omitempty"`
	QuotedUserName    string `bson:"quoted_user_name,omitempty"`
	CreatedAt         string `bson:"created_at"`
}

func toChatDoc(m *domain.ChatMessage) chatDoc {
	return chatDoc{
		ID:                m.ID,
		OrderID:           m.OrderID,
		UserID:            m.UserID,
		UserName:          m.UserName,
		Message:           m.Message,
		ImageID:           m.ImageID,
		QuotedMessageID:   m.QuotedMessageID,
		QuotedMessageText: m.QuotedMessageText,
		QuotedUserName:    m.QuotedUserName,
		CreatedAt:         domain.FormatTime(m.CreatedAt),
	}
}

func (d chatDoc) toDomain() *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:                d.ID,
		OrderID:           d.OrderID,
		UserID:            d.UserID,
		UserName:          d.UserName,
		Message:           d.Message,
		ImageID:           d.ImageID,
		QuotedMessageID:   d.QuotedMessageID,
		QuotedMessageText: d.QuotedMessageText,
		QuotedUserName:    d.QuotedUserName,
		CreatedAt:         parseTimeOrZero(d.CreatedAt),
	}
}

func (r *ChatRepository) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toChatDoc(msg)); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *ChatRepository) FindByID(ctx context.Context, id string) (*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d chatDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find chat message: %w", err)
	}
	return d.toDomain(), nil
}

func (r *ChatRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(listMessagesCap)

	cur, err := r.coll.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []*domain.ChatMessage
	for cur.Next(ctx) {
		var d chatDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}
		messages = append(messages, d.toDomain())
	}
	return messages, cur.Err()
}

func (r *ChatRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("delete chat messages by order: %w", err)
	}
	return nil
}
