package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/pkg/utils"
)

// ServiceCatalog reads and publishes services.
type ServiceCatalog interface {
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.ServiceDetail, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.ServiceDetail, error)
	ListMine(ctx context.Context, providerID uuid.UUID) ([]*entities.ServiceDetail, error)
	Create(ctx context.Context, providerID uuid.UUID, input *entities.CreateServiceInput) (*entities.ServiceDetail, error)
}

// ServiceHandler handles service catalog endpoints
type ServiceHandler struct {
	catalog ServiceCatalog
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalog ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// ListServices returns a page of the catalog
// GET /api/v1/services
func (h *ServiceHandler) ListServices(c *gin.Context) {
	p := pagination(c)

	services, total, err := h.catalog.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Services retrieved", gin.H{
		"services":   services,
		"pagination": p.Meta(total),
	})
}

// GetService returns one service with provider picture and availability
// GET /api/v1/services/:id
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, ok := pathID(c, "Service")
	if !ok {
		return
	}

	service, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Service retrieved", gin.H{"service": service})
}

// ListMyServices returns the caller's own services
// GET /api/v1/services/mine
func (h *ServiceHandler) ListMyServices(c *gin.Context) {
	providerID, ok := currentUserID(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListMine(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Services retrieved", gin.H{"services": services})
}

// CreateService publishes a service for a verified provider
// POST /api/v1/services
func (h *ServiceHandler) CreateService(c *gin.Context) {
	providerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := h.catalog.Create(c.Request.Context(), providerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Service created successfully", gin.H{"service": service})
}
