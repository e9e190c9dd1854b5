//go:generate go run github.com/golang/mock/mockgen -source=${GOFILE} -destination=zz_generated_jobstore_mock_test.go -package=transfer JobStore

package transfer

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrNoSuchData is returned by FindData when no value is stored under the
// given job id and key.
var ErrNoSuchData = errors.New("no such data for job")

// JobStore is the durable, job-scoped key-value and blob store the importers
// persist their scratch state into. It belongs to the surrounding platform;
// this module only uses it as an opaque typed store.
type JobStore interface {
	// FindData unmarshals the value stored under (jobID, key) into v.
	// Returns ErrNoSuchData if nothing is stored there.
	FindData(ctx context.Context, jobID uuid.UUID, key string, v any) error

	// CreateData stores a new value under (jobID, key). It is an error if
	// a value already exists there.
	CreateData(ctx context.Context, jobID uuid.UUID, key string, v any) error

	// UpdateData stores a value under (jobID, key), replacing any
	// existing one.
	UpdateData(ctx context.Context, jobID uuid.UUID, key string, v any) error

	// GetStream opens the byte stream staged under (jobID, key). The
	// caller closes it.
	GetStream(ctx context.Context, jobID uuid.UUID, key string) (io.ReadCloser, error)
}
