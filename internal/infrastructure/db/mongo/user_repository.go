package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// userDoc is the at-rest shape of a user. Timestamps are ISO-8601 strings.
type userDoc struct {
	ID               string `bson:"id"`
	Email            string `bson:"email"`
	Name             string `bson:"name"`
	Password         string `bson:"password"`
	Role             string `bson:"role"`
	IsApproved       bool   `bson:"is_approved"`
	IsActive         bool   `bson:"is_active"`
	IsEmailVerified  bool   `bson:"is_email_verified"`
	VerificationCode string `bson:"verification_code,omitempty"`
	CreatedAt        string `bson:"created_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Password:         u.PasswordHash,
		Role:             string(u.Role),
		IsApproved:       u.IsApproved,
		IsActive:         u.IsActive,
		IsEmailVerified:  u.IsEmailVerified,
		VerificationCode: u.VerificationCode,
		CreatedAt:        domain.FormatTime(u.CreatedAt),
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:               d.ID,
		Email:            d.Email,
		Name:             d.Name,
		PasswordHash:     d.Password,
		Role:             domain.Role(d.Role),
		IsApproved:       d.IsApproved,
		IsActive:         d.IsActive,
		IsEmailVerified:  d.IsEmailVerified,
		VerificationCode: d.VerificationCode,
		CreatedAt:        parseTimeOrZero(d.CreatedAt),
	}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, d.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return r.updateOne(ctx, id, bson.M{"role": string(role)})
}

func (r *UserRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	return r.updateOne(ctx, id, bson.M{"is_approved": approved})
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateOne(ctx, id, bson.M{"is_active": active})
}

func (r *UserRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// parseTimeOrZero parses an ISO-8601 timestamp, returning the zero time on
// failure so malformed documents degrade instead of erroring.
func parseTimeOrZero(s string) time.Time {
	t, err := domain.ParseTime(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
