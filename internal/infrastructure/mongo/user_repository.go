package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository はユーザーディレクトリとアカウント永続化を兼ねる MongoDB 実装。
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository は users コレクションを束縛したリポジトリを構築する。
func NewUserRepository(db *mongo.Database, userCollection string) *UserRepository {
	return &UserRepository{users: db.Collection(userCollection)}
}

// FindByIDs はユーザー ID 群を表示用参照へ引き当て、ID をキーとしたマップで返す。
// 解決できなかった ID はマップに含めない。
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.UserRef, error) {
	refs := make(map[string]domain.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	if len(objectIDs) == 0 {
		return refs, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		refs[doc.ID.Hex()] = domain.UserRef{
			ID:    doc.ID.Hex(),
			Email: doc.Email,
		}
	}
	return refs, cursor.Err()
}

// CountEnabled は会社に所属する有効ユーザー数を数える。
func (r *UserRepository) CountEnabled(ctx context.Context, companyID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(companyID))
	if err != nil {
		return 0, err
	}
	return r.users.CountDocuments(ctx, bson.M{"company": objectID, "enabled": true})
}

// FindByEmail はメールアドレスからアカウントを引く。該当なしは nil を返す。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	var doc UserDocument
	err := r.users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account := mapUserDocument(doc)
	return &account, nil
}

// Create はアカウントを追加し、採番された ID をドメインへ反映する。
func (r *UserRepository) Create(ctx context.Context, account *domain.UserAccount) error {
	companyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(account.CompanyID))
	if err != nil {
		return err
	}

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := UserDocument{
		ID:           primitive.NewObjectID(),
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CompanyID:    companyID,
		Enabled:      account.Enabled,
		CreatedAt:    createdAt,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		return err
	}

	account.ID = doc.ID.Hex()
	account.CreatedAt = doc.CreatedAt
	return nil
}

func mapUserDocument(doc UserDocument) domain.UserAccount {
	return domain.UserAccount{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CompanyID:    doc.CompanyID.Hex(),
		Enabled:      doc.Enabled,
		CreatedAt:    doc.CreatedAt,
	}
}
