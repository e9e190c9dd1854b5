package googlephotos

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/gphotosuploader/google-photos-api-client-go/v3/media_items"

	"github.com/mediaport/mediaport/transfer"
)

const (
	// copyPrefix marks imported media item filenames.
	copyPrefix = "copy of "

	// DefaultAlbumTitle is the album photos land in when no album title is
	// configured.
	DefaultAlbumTitle = "Default"

	// defaultMediaType is assumed when a photo does not declare one.
	defaultMediaType = "image/jpeg"
)

// Importer pushes a vendor-neutral photo batch into Google Photos. Album
// structure is dropped: every photo goes to one fixed default album, which is
// resolved or created lazily on the first photo and cached for the importer's
// lifetime.
type Importer struct {
	jobStore   transfer.JobStore
	streams    *transfer.ImageStreamProvider
	newClient  func(ctx context.Context, auth transfer.AuthData) (GPhotosClient, error)
	albumTitle string
	logger     *slog.Logger

	// Progress, if set, is called after each photo finishes.
	Progress transfer.ProgressFunc

	// mu guards the lazily built client and album id so concurrent
	// callers sharing one importer instance don't construct them twice.
	mu             sync.Mutex
	client         GPhotosClient
	defaultAlbumID string
}

// NewImporter builds a Google Photos importer. An empty defaultAlbum falls
// back to DefaultAlbumTitle.
func NewImporter(creds Credentials, defaultAlbum string, jobStore transfer.JobStore) *Importer {
	return newImporterWithClient(jobStore, transfer.NewImageStreamProvider(), defaultAlbum,
		func(ctx context.Context, auth transfer.AuthData) (GPhotosClient, error) {
			return newLibClient(ctx, creds, auth)
		})
}

// newImporterWithClient is the test seam.
func newImporterWithClient(jobStore transfer.JobStore, streams *transfer.ImageStreamProvider, defaultAlbum string, newClient func(ctx context.Context, auth transfer.AuthData) (GPhotosClient, error)) *Importer {
	if defaultAlbum == "" {
		defaultAlbum = DefaultAlbumTitle
	}
	return &Importer{
		jobStore:   jobStore,
		streams:    streams,
		newClient:  newClient,
		albumTitle: defaultAlbum,
		logger:     slog.Default(),
	}
}

// ImportItem imports one batch. Photos are processed strictly sequentially;
// the first vendor or I/O failure aborts the remaining batch with an error
// result.
func (i *Importer) ImportItem(ctx context.Context, jobID uuid.UUID, auth transfer.AuthData, data *transfer.PhotosContainerResource) (transfer.ImportResult, error) {
	client, err := i.getOrCreateClient(ctx, auth)
	if err != nil {
		return transfer.Errorf("error authorizing google photos: %v", err), nil
	}

	if data == nil {
		return transfer.OK(), nil
	}

	if len(data.Albums) > 0 {
		i.logger.Warn("importing albums into Google Photos is not supported; photos will be added to the default album",
			slog.Int("album_count", len(data.Albums)),
			slog.String("default_album", i.albumTitle))
	}

	for n, photo := range data.Photos {
		if err := i.importSinglePhoto(ctx, client, jobID, photo); err != nil {
			return transfer.Errorf("error importing photo: %v", err), nil
		}
		if i.Progress != nil {
			i.Progress(n+1, len(data.Photos))
		}
	}

	return transfer.OK(), nil
}

func (i *Importer) importSinglePhoto(ctx context.Context, client GPhotosClient, jobID uuid.UUID, photo transfer.PhotoModel) error {
	mediaType := photo.MediaType
	if mediaType == "" {
		mediaType = defaultMediaType
	}

	var stream io.ReadCloser
	var err error
	if photo.InTempStore {
		stream, err = i.jobStore.GetStream(ctx, jobID, photo.FetchableURL)
	} else {
		stream, err = i.streams.Get(ctx, photo.FetchableURL)
	}
	if err != nil {
		return err
	}
	defer stream.Close()

	// The uploader wants a file on disk, so spool the stream to a temp
	// file first.
	tmpPath, err := spoolToTempFile(stream, tempFileSuffix(mediaType))
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	uploadToken, err := client.Uploader().UploadFile(ctx, tmpPath)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", photo.Title, err)
	}

	mediaItem, err := client.MediaItems().Create(ctx, media_items.SimpleMediaItem{
		UploadToken: uploadToken,
		Filename:    copyPrefix + photo.Title,
	})
	if err != nil {
		return fmt.Errorf("failed to create media item for %s: %w", photo.Title, err)
	}
	i.logger.Debug("created media item",
		slog.String("title", photo.Title),
		slog.String("description", photo.Description),
		slog.String("media_id", mediaItem.ID))

	albumID, err := i.defaultAlbum(ctx, client)
	if err != nil {
		return err
	}
	if err := client.Albums().AddMediaItems(ctx, albumID, []string{mediaItem.ID}); err != nil {
		return fmt.Errorf("failed to add %s to default album: %w", photo.Title, err)
	}
	return nil
}

// getOrCreateClient lazily builds the vendor client once per importer
// instance. The created client is read-only shared state afterwards.
func (i *Importer) getOrCreateClient(ctx context.Context, auth transfer.AuthData) (GPhotosClient, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.client != nil {
		return i.client, nil
	}
	client, err := i.newClient(ctx, auth)
	if err != nil {
		return nil, err
	}
	i.client = client
	return client, nil
}

// defaultAlbum resolves the default album id, creating the album if it does
// not exist among this app's albums. The id is cached for the importer's
// lifetime.
func (i *Importer) defaultAlbum(ctx context.Context, client GPhotosClient) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.defaultAlbumID != "" {
		return i.defaultAlbumID, nil
	}

	existing, err := client.Albums().List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list albums: %w", err)
	}
	for _, album := range existing {
		if album.Title == i.albumTitle {
			i.defaultAlbumID = album.ID
			return album.ID, nil
		}
	}

	created, err := client.Albums().Create(ctx, i.albumTitle)
	if err != nil {
		return "", fmt.Errorf("failed to create default album %q: %w", i.albumTitle, err)
	}
	i.logger.Debug("created default album",
		slog.String("title", i.albumTitle),
		slog.String("album_id", created.ID))
	i.defaultAlbumID = created.ID
	return created.ID, nil
}

func spoolToTempFile(stream io.Reader, suffix string) (string, error) {
	f, err := os.CreateTemp("", "mediaport-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to spool photo bytes: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func tempFileSuffix(mediaType string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
