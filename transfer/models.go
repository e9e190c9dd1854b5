package transfer

// PhotoAlbum is an album in the vendor-neutral data model. ID is the
// universal album id, distinct from any vendor's own album id.
type PhotoAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PhotoModel is a single photo in the vendor-neutral data model.
//
// FetchableURL is either a plain HTTP URL, or, when InTempStore is set, a key
// into the job-scoped stream store holding the staged bytes.
type PhotoModel struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	MediaType    string `json:"media_type,omitempty"`
	FetchableURL string `json:"fetchable_url"`
	InTempStore  bool   `json:"in_temp_store,omitempty"`

	// AlbumID is the universal id of the owning album, empty if the photo
	// does not belong to an album.
	AlbumID string `json:"album_id,omitempty"`
}

// PhotosContainerResource is one batch-import request: an optional list of
// albums plus an optional list of photos.
type PhotosContainerResource struct {
	Albums []PhotoAlbum `json:"albums,omitempty"`
	Photos []PhotoModel `json:"photos,omitempty"`
}

// IsEmpty reports whether the container carries neither albums nor photos.
func (r *PhotosContainerResource) IsEmpty() bool {
	return r == nil || (len(r.Albums) == 0 && len(r.Photos) == 0)
}

// AuthData is the generic credential payload handed to an importer. Each
// adapter translates it into the vendor's own session type: OAuth1 vendors
// use AccessToken+TokenSecret, OAuth2 vendors use AccessToken+RefreshToken.
type AuthData struct {
	AccessToken  string `json:"access_token"`
	TokenSecret  string `json:"token_secret,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
