package mongo

import (
	"context"
	"strings"
	"time"

	admindomain "github.com/sngm3741/team-mood-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminCompanyRepository は管理側の会社操作を MongoDB で扱う実装リポジトリ。
type AdminCompanyRepository struct {
	companies *mongo.Collection
}

// NewAdminCompanyRepository は companies コレクションを束縛したリポジトリを構築する。
func NewAdminCompanyRepository(db *mongo.Database, companyCollection string) *AdminCompanyRepository {
	return &AdminCompanyRepository{companies: db.Collection(companyCollection)}
}

// Create は会社を追加し、採番された ID をドメインへ反映する。
func (r *AdminCompanyRepository) Create(ctx context.Context, company *admindomain.Company) error {
	createdAt := company.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := CompanyDocument{
		ID:        primitive.NewObjectID(),
		Name:      company.Name,
		Domain:    company.Domain.String(),
		CreatedAt: createdAt,
	}
	if _, err := r.companies.InsertOne(ctx, doc); err != nil {
		return err
	}

	company.ID = doc.ID.Hex()
	company.CreatedAt = doc.CreatedAt
	return nil
}

// FindByDomain はメールドメインから会社を引く。該当なしは nil を返す。
func (r *AdminCompanyRepository) FindByDomain(ctx context.Context, domain string) (*admindomain.Company, error) {
	var doc CompanyDocument
	err := r.companies.FindOne(ctx, bson.M{"domain": strings.ToLower(strings.TrimSpace(domain))}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admindomain.Company{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Domain:    admindomain.CompanyDomain(doc.Domain),
		CreatedAt: doc.CreatedAt,
	}, nil
}

// DeleteByID は会社 ID を指定して削除する。
func (r *AdminCompanyRepository) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	_, err = r.companies.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
