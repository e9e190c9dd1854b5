//go:generate go run github.com/golang/mock/mockgen -source=${GOFILE} -destination=zz_generated_client_mock_test.go -package=flickr Client

// Package flickr implements the Flickr photo importer: it uploads photo bytes
// through Flickr's upload endpoint and manages photosets lazily, creating each
// one with its first member photo because Flickr cannot create an empty album.
package flickr

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/mediaport/mediaport/transfer"
)

var (
	// Endpoint URLs - made variable for testing.
	uploadBaseURL = "https://up.flickr.com/services/upload/"
	restBaseURL   = "https://api.flickr.com/services/rest/"
)

// UploadMetaData carries the per-photo fields sent with an upload.
type UploadMetaData struct {
	Title       string
	Description string
}

// Client defines the Flickr API operations the importer needs.
type Client interface {
	// CheckAuth verifies the authenticated session and returns the Flickr
	// user id.
	CheckAuth(ctx context.Context) (string, error)

	// UploadPhoto uploads the photo bytes and returns the new Flickr
	// photo id. Photos are uploaded private (not public, friend or
	// family) and synchronously.
	UploadPhoto(ctx context.Context, photo io.Reader, meta UploadMetaData) (string, error)

	// CreatePhotoset creates a photoset with the given photo as its first
	// member and returns the new photoset id.
	CreatePhotoset(ctx context.Context, title, description, primaryPhotoID string) (string, error)

	// AddPhotoToSet adds an already-uploaded photo to an existing
	// photoset.
	AddPhotoToSet(ctx context.Context, photosetID, photoID string) error
}

// restClient talks to the real Flickr endpoints over an OAuth1-signed HTTP
// client.
type restClient struct {
	httpClient *http.Client
	uploadURL  string
	restURL    string
}

// NewClient builds a Client for one authenticated Flickr session. The app
// credentials identify this application; the token pair comes from the
// caller's generic auth payload.
func NewClient(ctx context.Context, apiKey, apiSecret string, auth transfer.AuthData) Client {
	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(auth.AccessToken, auth.TokenSecret)
	return &restClient{
		httpClient: config.Client(ctx, token),
		uploadURL:  uploadBaseURL,
		restURL:    restBaseURL,
	}
}

// restResponse is the common envelope of Flickr's JSON REST responses.
type restResponse struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`

	User *struct {
		ID string `json:"id"`
	} `json:"user"`
	Photoset *struct {
		ID string `json:"id"`
	} `json:"photoset"`
}

// callREST posts one Flickr REST method and decodes the JSON envelope,
// converting stat=fail into an error carrying Flickr's message text.
func (c *restClient) callREST(ctx context.Context, method string, params url.Values) (*restResponse, error) {
	form := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			form.Add(k, v)
		}
	}
	form.Set("method", method)
	form.Set("format", "json")
	form.Set("nojsoncallback", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s returned status %d: %s", method, resp.StatusCode, body)
	}

	var decoded restResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if decoded.Stat != "ok" {
		return nil, fmt.Errorf("%s failed (code %d): %s", method, decoded.Code, decoded.Message)
	}
	return &decoded, nil
}

func (c *restClient) CheckAuth(ctx context.Context) (string, error) {
	resp, err := c.callREST(ctx, "flickr.test.login", url.Values{})
	if err != nil {
		return "", err
	}
	if resp.User == nil || resp.User.ID == "" {
		return "", fmt.Errorf("flickr.test.login returned no user")
	}
	return resp.User.ID, nil
}

// uploadResponse is the XML envelope of Flickr's upload endpoint. The upload
// endpoint predates the JSON REST API and only speaks XML.
type uploadResponse struct {
	XMLName xml.Name `xml:"rsp"`
	Stat    string   `xml:"stat,attr"`
	PhotoID string   `xml:"photoid"`
	Err     *struct {
		Code string `xml:"code,attr"`
		Msg  string `xml:"msg,attr"`
	} `xml:"err"`
}

func (c *restClient) UploadPhoto(ctx context.Context, photo io.Reader, meta UploadMetaData) (string, error) {
	var body strings.Builder
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"title":       meta.Title,
		"description": meta.Description,
		"is_public":   "0",
		"is_friend":   "0",
		"is_family":   "0",
		"async":       "0",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to write upload field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("photo", "photo")
	if err != nil {
		return "", fmt.Errorf("failed to create upload part: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return "", fmt.Errorf("failed to copy photo bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload returned status %d: %s", resp.StatusCode, respBody)
	}

	var decoded uploadResponse
	if err := xml.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if decoded.Stat != "ok" {
		if decoded.Err != nil {
			return "", fmt.Errorf("upload failed (code %s): %s", decoded.Err.Code, decoded.Err.Msg)
		}
		return "", fmt.Errorf("upload failed with stat %q", decoded.Stat)
	}
	if decoded.PhotoID == "" {
		return "", fmt.Errorf("upload succeeded but returned no photo id")
	}
	return decoded.PhotoID, nil
}

func (c *restClient) CreatePhotoset(ctx context.Context, title, description, primaryPhotoID string) (string, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("description", description)
	params.Set("primary_photo_id", primaryPhotoID)

	resp, err := c.callREST(ctx, "flickr.photosets.create", params)
	if err != nil {
		return "", err
	}
	if resp.Photoset == nil || resp.Photoset.ID == "" {
		return "", fmt.Errorf("flickr.photosets.create returned no photoset id")
	}
	return resp.Photoset.ID, nil
}

func (c *restClient) AddPhotoToSet(ctx context.Context, photosetID, photoID string) error {
	params := url.Values{}
	params.Set("photoset_id", photosetID)
	params.Set("photo_id", photoID)

	_, err := c.callREST(ctx, "flickr.photosets.addPhoto", params)
	return err
}
