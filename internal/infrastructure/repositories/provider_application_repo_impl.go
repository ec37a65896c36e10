package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
)

const pendingApplicationsSQL = `
	SELECT pa.id, pa.user_id, pa.real_name, pa.document_url, pa.status, pa.created_at, pa.updated_at,
	       u.name AS user_name, u.email AS user_email
	FROM provider_applications pa
	INNER JOIN users u ON u.id = pa.user_id AND u.deleted_at IS NULL
	WHERE pa.status = ?
	ORDER BY pa.created_at ASC, pa.id ASC`

type pendingApplicationRow struct {
	models.ProviderApplication
	UserName  string
	UserEmail string
}

// ProviderApplicationRepository implements provider application operations
type ProviderApplicationRepository struct {
	db *gorm.DB
}

func NewProviderApplicationRepository(db *gorm.DB) *ProviderApplicationRepository {
	return &ProviderApplicationRepository{db: db}
}

func (r *ProviderApplicationRepository) Create(ctx context.Context, application *entities.ProviderApplication) error {
	m := &models.ProviderApplication{
		ID:          application.ID,
		UserID:      application.UserID,
		RealName:    application.RealName,
		DocumentURL: application.DocumentURL,
		Status:      string(application.Status),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	application.CreatedAt = m.CreatedAt
	application.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID reads the application, FOR UPDATE under a locked context.
func (r *ProviderApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProviderApplication, error) {
	var m models.ProviderApplication
	if err := lockFor(ctx, GetDB(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toApplicationEntity(&m), nil
}

func (r *ProviderApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus) error {
	result := GetDB(ctx, r.db).Model(&models.ProviderApplication{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListPending returns the review queue, oldest first.
func (r *ProviderApplicationRepository) ListPending(ctx context.Context) ([]*entities.PendingApplicationView, error) {
	var rows []pendingApplicationRow
	if err := GetDB(ctx, r.db).Raw(pendingApplicationsSQL, string(entities.ApplicationStatusPending)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.PendingApplicationView, 0, len(rows))
	for i := range rows {
		out = append(out, &entities.PendingApplicationView{
			ProviderApplication: *toApplicationEntity(&rows[i].ProviderApplication),
			UserName:            rows[i].UserName,
			UserEmail:           rows[i].UserEmail,
		})
	}
	return out, nil
}

func toApplicationEntity(m *models.ProviderApplication) *entities.ProviderApplication {
	return &entities.ProviderApplication{
		ID:          m.ID,
		UserID:      m.UserID,
		RealName:    m.RealName,
		DocumentURL: m.DocumentURL,
		Status:      entities.ApplicationStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
