package repositories

import (
	"context"

	"github.com/google/uuid"
	"appointme.backend/internal/domain/entities"
)

// ProviderApplicationRepository defines provider application operations
type ProviderApplicationRepository interface {
	Create(ctx context.Context, application *entities.ProviderApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ProviderApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus) error
	ListPending(ctx context.Context) ([]*entities.PendingApplicationView, error)
}
