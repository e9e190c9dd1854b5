// Package transfer defines the vendor-neutral photo data model, the Importer
// capability interface that vendor adapters implement, and the job-scoped
// scratch state used to bridge universal album ids to vendor album ids while
// an import runs.
package transfer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ResultType classifies the outcome of an import operation.
type ResultType string

const (
	ResultOK    ResultType = "OK"
	ResultError ResultType = "ERROR"
)

// ImportResult is the terminal outcome of one ImportItem call. Vendor, network
// and store failures end up here as ResultError with the underlying message;
// they do not surface as Go errors.
type ImportResult struct {
	Type    ResultType
	Message string
}

// OK returns a successful import result.
func OK() ImportResult {
	return ImportResult{Type: ResultOK}
}

// Errorf returns a failed import result carrying a formatted message.
func Errorf(format string, args ...any) ImportResult {
	return ImportResult{Type: ResultError, Message: fmt.Sprintf(format, args...)}
}

// ProgressFunc is called by an importer after each photo it finishes, with the
// number of photos completed so far and the total in the batch.
type ProgressFunc func(completed, total int)

// Importer receives a batch of vendor-neutral photo data and materializes it
// in one vendor's system.
//
// The error return is reserved for caller contract violations (an empty
// container, a photo referencing an album that was never registered); vendor
// and I/O failures are reported through the ImportResult instead. Callers must
// not run two ImportItem calls for the same job id concurrently.
type Importer interface {
	ImportItem(ctx context.Context, jobID uuid.UUID, auth AuthData, data *PhotosContainerResource) (ImportResult, error)
}
