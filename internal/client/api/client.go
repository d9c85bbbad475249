package api

import (
	"context"

	"github.com/salemerge/quotedesk/internal/client/models"
)

// Client is the backend contract used by the services.
//
// Mutations return the server's message (empty when it sent none) so
// callers can show it verbatim.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
	RequestOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (string, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error)

	ListUsers(ctx context.Context, q models.ListUsersQuery) (*models.UserPage, error)
	GetUser(ctx context.Context, id int64) (*models.AccountUser, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (string, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (string, error)
	DeleteUser(ctx context.Context, id int64) (string, error)
	SetUserStatus(ctx context.Context, id int64, active bool) (string, error)
	SetDownloadLimit(ctx context.Context, id int64, limit int) (string, error)
	ResetDownloads(ctx context.Context, id int64) (string, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdate) (string, error)

	GenerateVideo(ctx context.Context, req models.GenerateVideoRequest) (*models.GenerateResult, error)
	ListVideos(ctx context.Context, userID int64) ([]models.VideoRecord, error)
}

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
