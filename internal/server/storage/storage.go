// Package storage abstracts the object store holding uploaded documents.
// Temporary uploads live under the temp/ prefix; completed onboardings
// get a permanent per-provider folder.
package storage

import (
	"context"
	"fmt"
)

// TempPrefix is the holding area for uploads of in-progress drafts.
const TempPrefix = "temp/"

// ObjectStorage is the minimal bucket contract the portal needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// TempKey returns the temporary storage key for a stored filename.
func TempKey(storedFilename string) string {
	return TempPrefix + storedFilename
}

// ClientKey returns the permanent storage key of a document inside the
// provider's incoming folder.
func ClientKey(providerID, originalFilename string) string {
	return fmt.Sprintf("Clients/%s/Incoming/%s", providerID, originalFilename)
}
