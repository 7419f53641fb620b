package mongodb

import (
	"context"
	"fmt"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const usersCollection = "users"

// UserRepository reads and deletes accounts. Account creation is the auth
// provider's job and never happens through this service.
type UserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection(usersCollection),
		logger:     logger,
	}
}

func (r *UserRepository) FetchAll(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("fetch users failed", zap.Error(err))
		return nil, fmt.Errorf("%w: find users: %v", domain.ErrTransport, err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode users: %v", domain.ErrTransport, err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, toDomainUser(&docs[i]))
	}
	return users, nil
}

// DeleteByID is idempotent; a zero deleted count is success.
func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		r.logger.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return fmt.Errorf("%w: delete user %s: %v", domain.ErrTransport, id, err)
	}
	return nil
}

// FindByID resolves one account, for session verification.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user %s: %v", domain.ErrTransport, id, err)
	}
	return toDomainUser(&doc), nil
}
