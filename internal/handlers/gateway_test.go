package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janwerner/fotobox/internal/middleware"
	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/services"
	"github.com/janwerner/fotobox/internal/storage"
	"github.com/janwerner/fotobox/internal/store"
)

type fixture struct {
	app   *fiber.App
	store *store.MemoryStore
	blobs *storage.MemoryBlobStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := store.NewMemoryStore()
	blobs := storage.NewMemoryBlobStore()

	gw := &Gateway{
		Resolver: services.NewResolver(s),
		Delivery: services.NewDelivery(blobs),
		Gate:     services.NewShareGate(s, []byte("test-secret")),
		Uploader: services.NewUploader(s, blobs),
		Settings: services.NewSettings(s),
	}

	app := fiber.New()
	app.Use(middleware.LegacyRewrite())
	gw.Register(app)

	return &fixture{app: app, store: s, blobs: blobs}
}

func multipartFile(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestUploadThenResolveThenDownload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.AddAPIKey(models.APIKeyRecord{Key: "k1", UserID: "u1", FolderID: "f1", Valid: true})

	// Upload cat.png via the ingress gate.
	body, contentType := multipartFile(t, "file", "cat.png", "image/png", make([]byte, 1234))
	req := httptest.NewRequest(fiber.MethodPost, "/api/upload?key=k1", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	uploaded := decodeJSON(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, uploaded["success"])
	assert.Equal(t, "cat.png", uploaded["name"])
	assert.NotEmpty(t, uploaded["fileId"])
	assert.NotEmpty(t, uploaded["url"])

	// The metadata route resolves the display name to the same record.
	resp, err = f.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/files/f1/cat.png", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	meta := decodeJSON(t, resp)
	assert.Equal(t, "cat.png", meta["name"])
	assert.Equal(t, "cat.png", meta["originalName"])
	assert.Equal(t, true, meta["uploadedViaApi"])
	assert.Equal(t, float64(1234), meta["size"])

	// And the download route serves it as an attachment.
	resp, err = f.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/download/f1/cat.png", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="cat.png"`, resp.Header.Get("Content-Disposition"))
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, payload, 1234)
}

func TestUpload_RejectsBadKeyAndMissingFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.AddAPIKey(models.APIKeyRecord{Key: "k1", UserID: "u1", FolderID: "f1", Valid: true})

	// Missing key.
	body, contentType := multipartFile(t, "file", "cat.png", "image/png", []byte("x"))
	req := httptest.NewRequest(fiber.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Unknown key.
	body, contentType = multipartFile(t, "file", "cat.png", "image/png", []byte("x"))
	req = httptest.NewRequest(fiber.MethodPost, "/api/upload?key=wrong", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid key but no file part.
	req = httptest.NewRequest(fiber.MethodPost, "/api/upload?key=k1", bytes.NewReader(nil))
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFileInline_NotFoundUsesLocalizedBody(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/file/f1/missing.png", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Datei nicht gefunden.", string(body))
}

func TestFolderList_EmptyFolderIsEmptyArray(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/files/emptyfolder", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decodeJSON(t, resp)
	files, ok := out["files"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, files)
}

func TestDirect_RedirectsToObjectURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.AddFile(models.FileRecord{
		FolderID:    "f1",
		Name:        "pic.png",
		StorageName: "100_pic.png",
		URL:         "mem://users/u1/f1/100_pic.png",
	})

	resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/direct/f1/pic.png", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "mem://users/u1/f1/100_pic.png", resp.Header.Get("Location"))
}

func TestLegacyPathReachesDirectRoute(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/myfolder/myphoto.png", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/direct/myfolder/myphoto.png", resp.Header.Get("Location"))
}

func TestProxyImage_RequiresURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/proxy-image", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestShareFlow_ValidateUnlocksView(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.AddGallery(models.GalleryRecord{
		FolderID:      "f1",
		Name:          "Hochzeit",
		ShareID:       "s1",
		ShareEnabled:  true,
		SharePassword: "geheim",
	})
	f.store.AddFile(models.FileRecord{FolderID: "f1", Name: "a.png", StorageName: "1_a.png"})

	// Locked without a session.
	resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/s/s1", nil))
	require.NoError(t, err)
	locked := decodeJSON(t, resp)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, true, locked["locked"])

	// Wrong password is rejected.
	req := httptest.NewRequest(fiber.MethodPost, "/api/gallery/validate-share-password",
		bytes.NewReader([]byte(`{"shareId":"s1","password":"falsch"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Correct password issues the named session cookie.
	req = httptest.NewRequest(fiber.MethodPost, "/api/gallery/validate-share-password",
		bytes.NewReader([]byte(`{"shareId":"s1","password":"geheim"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	result := decodeJSON(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["valid"])

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "share_password_s1" {
			session = c
		}
	}
	require.NotNil(t, session, "expected share_password_s1 cookie")
	assert.NotEqual(t, "geheim", session.Value, "cookie must not carry the raw password")

	// The cookie unlocks the share view.
	req = httptest.NewRequest(fiber.MethodGet, "/s/s1", nil)
	req.AddCookie(session)
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	view := decodeJSON(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	gallery := view["gallery"].(map[string]interface{})
	assert.Equal(t, "Hochzeit", gallery["name"])
	assert.Equal(t, "s1", gallery["shareId"])
	assert.Len(t, view["files"], 1)
}

func TestShareFlow_DisabledShare(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.AddGallery(models.GalleryRecord{
		FolderID:      "f1",
		ShareID:       "s2",
		ShareEnabled:  false,
		SharePassword: "geheim",
	})

	req := httptest.NewRequest(fiber.MethodPost, "/api/gallery/validate-share-password",
		bytes.NewReader([]byte(`{"shareId":"s2","password":"geheim"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = f.app.Test(httptest.NewRequest(fiber.MethodGet, "/s/s2", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestShareSettings_Cached(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.AddFolderSettings(models.FolderSettings{FolderID: "f1", ShareButtons: true, ButtonNetworks: []string{"whatsapp"}})

	for i := 0; i < 3; i++ {
		resp, err := f.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/folder/f1/share-settings", nil))
		require.NoError(t, err)
		out := decodeJSON(t, resp)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, out["shareButtons"])
	}
	assert.Equal(t, 1, f.store.SettingsReads())
}
