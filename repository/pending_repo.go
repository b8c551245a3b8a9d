package repository

import (
	"context"

	"dellcube/models"
)

// PendingUserRepository stages signups awaiting OTP verification. The
// backing collection carries a TTL index on expires_at, so entries vanish
// on their own and the staging state survives process restarts.
type PendingUserRepository interface {
	SavePending(ctx context.Context, p *models.PendingUser) error
	GetPendingByEmail(ctx context.Context, email string) (*models.PendingUser, error)
	DeletePending(ctx context.Context, email string) error
}
