package http

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/event-management-backend/internal/pkg/storage"
	"github.com/planora/event-management-backend/internal/venue"
)

type fakeVenueService struct {
	venue.Service
	ownerID   string
	photoSets int
}

func (f *fakeVenueService) EnsureOwner(_ context.Context, _ string, actorID string, isSysAdmin bool) error {
	if !isSysAdmin && actorID != f.ownerID {
		return venue.ErrPermissionDenied
	}
	return nil
}

func (f *fakeVenueService) SetPhotoPath(_ context.Context, id string, path string, _ string, _ bool) (*venue.Venue, error) {
	f.photoSets++
	return &venue.Venue{ID: id, ProviderID: f.ownerID, Name: "Grand Hall", PhotoPath: &path}, nil
}

type fakeStorage struct {
	saved []string
}

func (f *fakeStorage) Save(_ context.Context, path string, _ io.Reader) error {
	f.saved = append(f.saved, path)
	return nil
}

func (f *fakeStorage) Get(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeStorage) Delete(_ context.Context, _ string) error {
	return nil
}

func photoForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("photo", "hall.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func performUpload(t *testing.T, h *Handler, venueID, userID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, contentType := photoForm(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/v1/venues/"+venueID+"/photo", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: venueID}}
	c.Set("userID", userID)

	h.UploadPhoto(c)
	return w
}

func TestUploadPhotoOwnership(t *testing.T) {
	const venueID = "3f2d9c4e-7a61-4b0f-9d25-6c8e1a5b7f30"

	t.Run("denied upload writes nothing to storage", func(t *testing.T) {
		svc := &fakeVenueService{ownerID: "provider-1"}
		store := &fakeStorage{}
		h := NewHandler(svc, store, storage.NewImageProcessor())

		w := performUpload(t, h, venueID, "provider-2")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, store.saved, "a denied upload must not leave a file behind")
		assert.Zero(t, svc.photoSets)
	})

	t.Run("owner upload stores the thumbnail and sets the path", func(t *testing.T) {
		svc := &fakeVenueService{ownerID: "provider-1"}
		store := &fakeStorage{}
		h := NewHandler(svc, store, storage.NewImageProcessor())

		w := performUpload(t, h, venueID, "provider-1")

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, store.saved, 1)
		assert.Equal(t, 1, svc.photoSets)
	})
}
