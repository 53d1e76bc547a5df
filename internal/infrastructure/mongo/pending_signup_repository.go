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

// PendingSignupRepository は認証待ちユーザーを MongoDB で扱う実装リポジトリ。
type PendingSignupRepository struct {
	pending *mongo.Collection
}

// NewPendingSignupRepository は pendingUsers コレクションを束縛したリポジトリを構築する。
func NewPendingSignupRepository(db *mongo.Database, pendingCollection string) *PendingSignupRepository {
	return &PendingSignupRepository{pending: db.Collection(pendingCollection)}
}

// Create は認証待ちレコードを追加する。
func (r *PendingSignupRepository) Create(ctx context.Context, signup *domain.PendingSignup) error {
	companyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(signup.CompanyID))
	if err != nil {
		return err
	}

	createdAt := signup.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := PendingUserDocument{
		ID:           primitive.NewObjectID(),
		Code:         signup.Code,
		Email:        signup.Email,
		PasswordHash: signup.PasswordHash,
		CompanyID:    companyID,
		CreatedAt:    createdAt,
	}
	if _, err := r.pending.InsertOne(ctx, doc); err != nil {
		return err
	}
	signup.CreatedAt = doc.CreatedAt
	return nil
}

// FindByCode は認証コードからレコードを引く。該当なしは nil を返す。
func (r *PendingSignupRepository) FindByCode(ctx context.Context, code string) (*domain.PendingSignup, error) {
	var doc PendingUserDocument
	err := r.pending.FindOne(ctx, bson.M{"code": strings.TrimSpace(code)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.PendingSignup{
		Code:         doc.Code,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CompanyID:    doc.CompanyID.Hex(),
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// Delete は認証済みとなったコードのレコードを削除する。
func (r *PendingSignupRepository) Delete(ctx context.Context, code string) error {
	_, err := r.pending.DeleteOne(ctx, bson.M{"code": strings.TrimSpace(code)})
	return err
}
