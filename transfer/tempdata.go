package transfer

import (
	"fmt"

	"github.com/google/uuid"
)

// TempPhotosKey is the job store key under which TempPhotosData is persisted.
const TempPhotosKey = "temp-photos-data"

// AlbumState is the per-album-id position in the lazy creation protocol.
// Every universal album id moves unregistered -> pending -> created, in that
// order, at most once each.
type AlbumState int

const (
	// AlbumUnregistered means the id was never seen in an album phase.
	AlbumUnregistered AlbumState = iota
	// AlbumPending means the definition is recorded but no vendor album
	// exists yet.
	AlbumPending
	// AlbumCreated means the vendor album exists and its id is known.
	AlbumCreated
)

// TempPhotosData is the durable, job-scoped scratch state for one import run.
// It is persisted through a JobStore after every mutation so progress survives
// a crash mid-batch. It is single-writer-per-job; there is no internal
// locking.
type TempPhotosData struct {
	JobID uuid.UUID `json:"job_id"`

	// PendingAlbums maps universal album id to the album definition, for
	// albums that have not been created at the vendor yet.
	PendingAlbums map[string]PhotoAlbum `json:"pending_albums"`

	// CreatedAlbums maps universal album id to the vendor album id, once
	// the vendor album exists. This is the single source of truth
	// preventing duplicate creation.
	CreatedAlbums map[string]string `json:"created_albums"`
}

// NewTempPhotosData returns empty scratch state for the given job.
func NewTempPhotosData(jobID uuid.UUID) *TempPhotosData {
	return &TempPhotosData{
		JobID:         jobID,
		PendingAlbums: make(map[string]PhotoAlbum),
		CreatedAlbums: make(map[string]string),
	}
}

// State returns the album's position in the creation protocol.
func (d *TempPhotosData) State(albumID string) AlbumState {
	if _, ok := d.CreatedAlbums[albumID]; ok {
		return AlbumCreated
	}
	if _, ok := d.PendingAlbums[albumID]; ok {
		return AlbumPending
	}
	return AlbumUnregistered
}

// RegisterPending records an album definition ahead of the photo phase.
// Registering an id that is already created is an error; re-registering a
// pending id just replaces the definition.
func (d *TempPhotosData) RegisterPending(album PhotoAlbum) error {
	if _, ok := d.CreatedAlbums[album.ID]; ok {
		return fmt.Errorf("album %q already created, cannot re-register", album.ID)
	}
	if d.PendingAlbums == nil {
		d.PendingAlbums = make(map[string]PhotoAlbum)
	}
	d.PendingAlbums[album.ID] = album
	return nil
}

// PendingAlbum looks up the registered-but-not-yet-created definition.
func (d *TempPhotosData) PendingAlbum(albumID string) (PhotoAlbum, bool) {
	album, ok := d.PendingAlbums[albumID]
	return album, ok
}

// CreatedAlbumID looks up the vendor album id for a created album.
func (d *TempPhotosData) CreatedAlbumID(albumID string) (string, bool) {
	id, ok := d.CreatedAlbums[albumID]
	return id, ok
}

// MarkCreated promotes a pending album to created, recording the vendor album
// id and dropping the pending definition. The album must currently be pending.
func (d *TempPhotosData) MarkCreated(albumID, vendorAlbumID string) error {
	switch d.State(albumID) {
	case AlbumCreated:
		return fmt.Errorf("album %q already created as %q", albumID, d.CreatedAlbums[albumID])
	case AlbumUnregistered:
		return fmt.Errorf("album %q not registered", albumID)
	}
	if d.CreatedAlbums == nil {
		d.CreatedAlbums = make(map[string]string)
	}
	d.CreatedAlbums[albumID] = vendorAlbumID
	delete(d.PendingAlbums, albumID)
	return nil
}
