//go:generate go run github.com/golang/mock/mockgen -source=${GOFILE} -destination=zz_generated_local_mocks_test.go -package=googlephotos GPhotosClient,AlbumsService,MediaItemsService
//go:generate go run github.com/golang/mock/mockgen -destination=mock_media_uploader_test.go -package=googlephotos github.com/gphotosuploader/google-photos-api-client-go/v3 MediaUploader

// Package googlephotos implements the Google Photos importer. Google Photos
// does not support importing album structure through the library API surface
// we use, so photos land in one fixed default album.
package googlephotos

import (
	"context"
	"fmt"

	gphotos "github.com/gphotosuploader/google-photos-api-client-go/v3"
	"github.com/gphotosuploader/google-photos-api-client-go/v3/albums"
	"github.com/gphotosuploader/google-photos-api-client-go/v3/media_items"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mediaport/mediaport/transfer"
)

const photosLibraryScope = "https://www.googleapis.com/auth/photoslibrary.appendonly"

// GPhotosClient defines the Google Photos client operations the importer
// needs.
type GPhotosClient interface {
	Albums() AlbumsService
	MediaItems() MediaItemsService
	Uploader() gphotos.MediaUploader
}

// AlbumsService defines the album-related operations we use.
type AlbumsService interface {
	List(ctx context.Context) ([]albums.Album, error)
	Create(ctx context.Context, title string) (*albums.Album, error)
	AddMediaItems(ctx context.Context, albumID string, mediaItemIDs []string) error
}

// MediaItemsService defines the media item-related operations we use.
type MediaItemsService interface {
	Create(ctx context.Context, item media_items.SimpleMediaItem) (*media_items.MediaItem, error)
}

// Credentials identify this application to Google's OAuth endpoint. The
// per-user token pair arrives separately in each ImportItem call.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// libClient adapts the gphotosuploader client to GPhotosClient.
type libClient struct {
	c *gphotos.Client
}

func (l *libClient) Albums() AlbumsService           { return l.c.Albums }
func (l *libClient) MediaItems() MediaItemsService   { return l.c.MediaItems }
func (l *libClient) Uploader() gphotos.MediaUploader { return l.c.Uploader }

// newLibClient translates the generic auth payload into an authenticated
// Google Photos client.
func newLibClient(ctx context.Context, creds Credentials, auth transfer.AuthData) (GPhotosClient, error) {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Scopes:       []string{photosLibraryScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		TokenType:    "Bearer",
	}

	c, err := gphotos.NewClient(conf.Client(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("failed to create google photos client: %w", err)
	}
	return &libClient{c: c}, nil
}
