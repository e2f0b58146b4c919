package domain

import "context"

// MediaStorage is the remote object store the service keeps images on.
//
// The store has no transactions: callers are responsible for ordering.
// DeleteFolder fails with ErrFolderNotEmpty while any object remains under
// the folder, so contained objects must always be deleted first.
type MediaStorage interface {
	Upload(ctx context.Context, data []byte, folder string) (*MediaObject, error)
	Delete(ctx context.Context, id string) error
	DeleteFolder(ctx context.Context, path string) error
}
