package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
	"appointme.backend/pkg/utils"
)

const serviceDetailSelect = `
	SELECT s.id, s.provider_id, s.name, s.description, s.price, s.created_at, s.updated_at,
	       u.name AS provider_name,
	       COALESCE(pp.path, '') AS picture_path,
	       COALESCE(sa.is_booked, FALSE) AS is_booked
	FROM services s
	INNER JOIN users u ON u.id = s.provider_id AND u.deleted_at IS NULL
	LEFT JOIN profile_pictures pp ON pp.user_id = s.provider_id
	LEFT JOIN service_availabilities sa ON sa.service_id = s.id`

type serviceDetailRow struct {
	models.Service
	ProviderName string
	PicturePath  string
	IsBooked     bool
}

func (row *serviceDetailRow) toEntity() *entities.ServiceDetail {
	picture := row.PicturePath
	if picture == "" {
		picture = entities.DefaultProfilePicture
	}
	return &entities.ServiceDetail{
		Service:        *toServiceEntity(&row.Service),
		ProviderName:   row.ProviderName,
		ProfilePicture: picture,
		IsBooked:       row.IsBooked,
	}
}

// ServiceRepository implements service catalog operations
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	m := &models.Service{
		ID:          service.ID,
		ProviderID:  service.ProviderID,
		Name:        service.Name,
		Description: service.Description,
		Price:       service.Price,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	service.CreatedAt = m.CreatedAt
	service.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toServiceEntity(&m), nil
}

// GetDetail returns the service with provider name, picture (default when absent) and availability.
func (r *ServiceRepository) GetDetail(ctx context.Context, id uuid.UUID) (*entities.ServiceDetail, error) {
	var rows []serviceDetailRow
	if err := GetDB(ctx, r.db).Raw(serviceDetailSelect+" WHERE s.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return rows[0].toEntity(), nil
}

// List returns the public catalog, newest first.
func (r *ServiceRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.ServiceDetail, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Table("services s").
		Joins("INNER JOIN users u ON u.id = s.provider_id AND u.deleted_at IS NULL").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []serviceDetailRow
	if err := db.Raw(serviceDetailSelect+" ORDER BY s.created_at DESC, s.id DESC LIMIT ? OFFSET ?",
		pagination.Limit, pagination.Offset()).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return detailRowsToEntities(rows), total, nil
}

func (r *ServiceRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entities.ServiceDetail, error) {
	var rows []serviceDetailRow
	if err := GetDB(ctx, r.db).Raw(serviceDetailSelect+" WHERE s.provider_id = ? ORDER BY s.created_at DESC, s.id DESC", providerID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return detailRowsToEntities(rows), nil
}

// LockByProvider reads the provider's service ids in id order, FOR UPDATE when ctx is locked.
func (r *ServiceRepository) LockByProvider(ctx context.Context, providerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := lockFor(ctx, GetDB(ctx, r.db)).
		Model(&models.Service{}).
		Where("provider_id = ?", providerID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func detailRowsToEntities(rows []serviceDetailRow) []*entities.ServiceDetail {
	out := make([]*entities.ServiceDetail, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out
}

func toServiceEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
