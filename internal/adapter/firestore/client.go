// Package firestore stores works, saves and reading progress in Cloud
// Firestore, using the same collections and field names as the hosted
// document store. Users and tokens stay in PostgreSQL.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
)

const (
	worksCollection    = "stories"
	savesCollection    = "saves"
	progressCollection = "reading_progress"
)

// NewClient connects to Firestore. When FIRESTORE_EMULATOR_HOST is set the
// SDK talks to the emulator and ignores credentials.
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return client, nil
}

// mapError converts gRPC status codes to domain errors.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	label := entity
	if key != "" {
		label = entity + " " + key
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", label, err)
	}

	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", label, domain.ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w", label, domain.ErrAlreadyExists)
	case codes.PermissionDenied:
		return fmt.Errorf("%s: %w", label, domain.ErrForbidden)
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%s: %w", label, domain.ErrValidation)
	case codes.Aborted:
		return fmt.Errorf("%s: %w", label, domain.ErrConflict)
	}

	return fmt.Errorf("%s: %w", label, err)
}
