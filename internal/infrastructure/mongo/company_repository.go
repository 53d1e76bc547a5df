package mongo

import (
	"context"
	"strings"

	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CompanyDirectory は公開側が参照する会社ディレクトリの MongoDB 実装。
type CompanyDirectory struct {
	companies *mongo.Collection
}

// NewCompanyDirectory は companies コレクションを束縛したディレクトリを構築する。
func NewCompanyDirectory(db *mongo.Database, companyCollection string) *CompanyDirectory {
	return &CompanyDirectory{companies: db.Collection(companyCollection)}
}

// FindByID は会社 ID から表示用参照を取得する。該当なしは nil を返す。
func (d *CompanyDirectory) FindByID(ctx context.Context, id string) (*domain.CompanyRef, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}
	return d.findOne(ctx, bson.M{"_id": objectID})
}

// FindByDomain はメールドメインから会社を引く。該当なしは nil を返す。
func (d *CompanyDirectory) FindByDomain(ctx context.Context, emailDomain string) (*domain.CompanyRef, error) {
	return d.findOne(ctx, bson.M{"domain": strings.ToLower(strings.TrimSpace(emailDomain))})
}

func (d *CompanyDirectory) findOne(ctx context.Context, filter bson.M) (*domain.CompanyRef, error) {
	var doc CompanyDocument
	err := d.companies.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.CompanyRef{
		ID:     doc.ID.Hex(),
		Name:   doc.Name,
		Domain: doc.Domain,
	}, nil
}
