package mongo

import (
	"context"
	"strings"

	admindomain "github.com/sngm3741/team-mood-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminUserRepository は管理側のユーザー照会を MongoDB で扱う実装リポジトリ。
type AdminUserRepository struct {
	users *mongo.Collection
}

// NewAdminUserRepository は users コレクションを束縛したリポジトリを構築する。
func NewAdminUserRepository(db *mongo.Database, userCollection string) *AdminUserRepository {
	return &AdminUserRepository{users: db.Collection(userCollection)}
}

// FindEnabledByCompany は会社に所属する有効ユーザーを登録日時の昇順で返す。
func (r *AdminUserRepository) FindEnabledByCompany(ctx context.Context, companyID string) ([]admindomain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(companyID))
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.users.Find(ctx, bson.M{"company": objectID, "enabled": true}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]admindomain.User, 0)
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, admindomain.User{
			ID:        doc.ID.Hex(),
			Email:     doc.Email,
			CompanyID: doc.CompanyID.Hex(),
			Enabled:   doc.Enabled,
			CreatedAt: doc.CreatedAt,
		})
	}
	return users, cursor.Err()
}
