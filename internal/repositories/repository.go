package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a record would break a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)

// Set bundles one repository per entity.
type Set struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Reactions     ReactionRepository
	Stories       StoryRepository
	StoryViews    StoryViewRepository
	Follows       FollowRepository
	Messages      MessageRepository
	ChatSessions  ChatSessionRepository
	Notifications NotificationRepository
	Points        PointsRepository
}

// Collection names used by the JSON record store.
const (
	usersCollection         = "users"
	profilesCollection      = "profiles"
	postsCollection         = "posts"
	commentsCollection      = "comments"
	likesCollection         = "likes"
	reactionsCollection     = "reactions"
	storiesCollection       = "stories"
	storyViewsCollection    = "storyViews"
	followersCollection     = "followers"
	messagesCollection      = "messages"
	chatSessionsCollection  = "chatSessions"
	notificationsCollection = "notifications"
	pointsCollection        = "userPoints"
)

// NewFileSet returns repositories backed by JSON collection files.
func NewFileSet(store *recordstore.Store) *Set {
	return &Set{
		Users:         NewFileUserRepository(store),
		Profiles:      NewFileProfileRepository(store),
		Posts:         NewFilePostRepository(store),
		Comments:      NewFileCommentRepository(store),
		Likes:         NewFileLikeRepository(store),
		Reactions:     NewFileReactionRepository(store),
		Stories:       NewFileStoryRepository(store),
		StoryViews:    NewFileStoryViewRepository(store),
		Follows:       NewFileFollowRepository(store),
		Messages:      NewFileMessageRepository(store),
		ChatSessions:  NewFileChatSessionRepository(store),
		Notifications: NewFileNotificationRepository(store),
		Points:        NewFilePointsRepository(store),
	}
}

// NewDatabaseSet returns repositories backed by PostgreSQL for relational data
// and MongoDB for posts, stories and reactions.
func NewDatabaseSet(pgdb *gorm.DB, mdb *mongo.Database) *Set {
	return &Set{
		Users:         NewPostgresUserRepository(pgdb),
		Profiles:      NewPostgresProfileRepository(pgdb),
		Posts:         NewMongoPostRepository(mdb),
		Comments:      NewPostgresCommentRepository(pgdb),
		Likes:         NewPostgresLikeRepository(pgdb),
		Reactions:     NewMongoReactionRepository(mdb),
		Stories:       NewMongoStoryRepository(mdb),
		StoryViews:    NewPostgresStoryViewRepository(pgdb),
		Follows:       NewPostgresFollowRepository(pgdb),
		Messages:      NewPostgresMessageRepository(pgdb),
		ChatSessions:  NewPostgresChatSessionRepository(pgdb),
		Notifications: NewPostgresNotificationRepository(pgdb),
		Points:        NewPostgresPointsRepository(pgdb),
	}
}

// AutoMigrate creates or updates the PostgreSQL tables.
func AutoMigrate(pgdb *gorm.DB) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Comment{},
		&models.Like{},
		&models.StoryView{},
		&models.Follow{},
		&models.Message{},
		&models.ChatSession{},
		&models.Notification{},
		&models.UserPoints{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")
	return nil
}

// EnsureMongoIndexes creates the story TTL index and the uniqueness indexes MongoDB relies on.
func EnsureMongoIndexes(ctx context.Context, mdb *mongo.Database) error {
	ttl := int32(models.StoryLifetime.Seconds())
	indexes := map[string][]mongo.IndexModel{
		storiesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(ttl)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		reactionsCollection: {
			{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := mdb.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	log.Println("MongoDB indexes ensured.")
	return nil
}

// gormError translates gorm sentinels into repository errors.
func gormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// mongoError translates mongo-driver errors into repository errors.
func mongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
