package flickr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mediaport/mediaport/transfer"
)

// copyPrefix marks imported photo and photoset titles so users can tell
// transferred items apart from their own.
const copyPrefix = "Copy of - "

// ErrAlbumNotRegistered means a photo referenced an album id that was never
// registered in the album phase. That is a caller contract violation, not a
// vendor failure.
var ErrAlbumNotRegistered = errors.New("album not registered for job")

// ErrNothingToImport means the container carried neither albums nor photos.
var ErrNothingToImport = errors.New("no data to import")

// Importer pushes a vendor-neutral photo batch into Flickr.
type Importer struct {
	jobStore  transfer.JobStore
	streams   *transfer.ImageStreamProvider
	clientFor func(ctx context.Context, auth transfer.AuthData) Client
	logger    *slog.Logger

	// Progress, if set, is called after each photo finishes.
	Progress transfer.ProgressFunc
}

// NewImporter builds a Flickr importer using the given app credentials. The
// per-user token pair arrives later, in the AuthData of each ImportItem call.
func NewImporter(apiKey, apiSecret string, jobStore transfer.JobStore) *Importer {
	return newImporter(jobStore, transfer.NewImageStreamProvider(),
		func(ctx context.Context, auth transfer.AuthData) Client {
			return NewClient(ctx, apiKey, apiSecret, auth)
		})
}

// newImporter is the test seam: it accepts a pre-built client factory and
// stream provider.
func newImporter(jobStore transfer.JobStore, streams *transfer.ImageStreamProvider, clientFor func(ctx context.Context, auth transfer.AuthData) Client) *Importer {
	return &Importer{
		jobStore:  jobStore,
		streams:   streams,
		clientFor: clientFor,
		logger:    slog.Default(),
	}
}

// ImportItem imports one batch. Albums are registered as pending first with no
// vendor call; each Flickr photoset is then created lazily with the first
// photo that belongs to it. Photos are processed strictly sequentially and
// the first vendor or I/O failure aborts the batch with an error result.
func (i *Importer) ImportItem(ctx context.Context, jobID uuid.UUID, auth transfer.AuthData, data *transfer.PhotosContainerResource) (transfer.ImportResult, error) {
	client := i.clientFor(ctx, auth)
	if _, err := client.CheckAuth(ctx); err != nil {
		return transfer.Errorf("error authorizing flickr: %v", err), nil
	}

	if data.IsEmpty() {
		return transfer.ImportResult{}, ErrNothingToImport
	}

	tempData := transfer.NewTempPhotosData(jobID)
	err := i.jobStore.FindData(ctx, jobID, transfer.TempPhotosKey, tempData)
	switch {
	case errors.Is(err, transfer.ErrNoSuchData):
		if err := i.jobStore.CreateData(ctx, jobID, transfer.TempPhotosKey, tempData); err != nil {
			return transfer.Errorf("error creating temp photos data: %v", err), nil
		}
	case err != nil:
		return transfer.Errorf("error loading temp photos data: %v", err), nil
	}

	// Album phase: record every album as pending. Flickr only allows
	// creating a photoset with a photo in it, so creation waits for the
	// first photo.
	if len(data.Albums) > 0 {
		for _, album := range data.Albums {
			if err := tempData.RegisterPending(album); err != nil {
				return transfer.Errorf("error registering album %s: %v", album.ID, err), nil
			}
		}
		if err := i.jobStore.UpdateData(ctx, jobID, transfer.TempPhotosKey, tempData); err != nil {
			return transfer.Errorf("error saving temp photos data: %v", err), nil
		}
	}

	for n, photo := range data.Photos {
		if err := i.importSinglePhoto(ctx, client, jobID, photo, tempData); err != nil {
			if errors.Is(err, ErrAlbumNotRegistered) {
				return transfer.ImportResult{}, err
			}
			return transfer.Errorf("error importing photo: %v", err), nil
		}
		if i.Progress != nil {
			i.Progress(n+1, len(data.Photos))
		}
	}

	return transfer.OK(), nil
}

func (i *Importer) importSinglePhoto(ctx context.Context, client Client, jobID uuid.UUID, photo transfer.PhotoModel, tempData *transfer.TempPhotosData) error {
	photoID, err := i.uploadPhoto(ctx, client, photo)
	if err != nil {
		return err
	}
	i.logger.Debug("uploaded photo to flickr",
		slog.String("title", photo.Title),
		slog.String("photo_id", photoID))

	// A photo without an album lives in the user's camera roll; nothing
	// more to do.
	if photo.AlbumID == "" {
		return nil
	}

	switch tempData.State(photo.AlbumID) {
	case transfer.AlbumCreated:
		newAlbumID, _ := tempData.CreatedAlbumID(photo.AlbumID)
		if err := client.AddPhotoToSet(ctx, newAlbumID, photoID); err != nil {
			return err
		}

	case transfer.AlbumPending:
		album, _ := tempData.PendingAlbum(photo.AlbumID)
		photosetID, err := client.CreatePhotoset(ctx, copyPrefix+album.Name, album.Description, photoID)
		if err != nil {
			return err
		}
		if err := tempData.MarkCreated(photo.AlbumID, photosetID); err != nil {
			return err
		}
		i.logger.Debug("created flickr photoset",
			slog.String("album_id", photo.AlbumID),
			slog.String("photoset_id", photosetID))

	default:
		// TODO: decide what to do with orphaned photos; a fallback
		// album would let the batch continue instead of failing.
		return fmt.Errorf("%w: %s", ErrAlbumNotRegistered, photo.AlbumID)
	}

	// Persist after every photo so progress survives a crash mid-batch.
	return i.jobStore.UpdateData(ctx, jobID, transfer.TempPhotosKey, tempData)
}

func (i *Importer) uploadPhoto(ctx context.Context, client Client, photo transfer.PhotoModel) (string, error) {
	stream, err := i.streams.Get(ctx, photo.FetchableURL)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	return client.UploadPhoto(ctx, stream, UploadMetaData{
		Title:       copyPrefix + photo.Title,
		Description: photo.Description,
	})
}
