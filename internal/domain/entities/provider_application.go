package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProviderApplication is a request to become a verified provider.
type ProviderApplication struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	RealName    string            `json:"real_name"`
	DocumentURL string            `json:"document_url"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PendingApplicationView joins a pending application with its submitter.
type PendingApplicationView struct {
	ProviderApplication
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// SubmitApplicationInput represents the provider credentials.
type SubmitApplicationInput struct {
	RealName    string `json:"real_name" binding:"required,notblank,max=255"`
	DocumentURL string `json:"document_url" binding:"required,url,max=2048"`
}
