package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filehub/internal/access"
	"filehub/internal/model"
	"filehub/internal/service"
	serviceMocks "filehub/internal/service/mocks"
)

func uploadRequest(t *testing.T, filename, contentType, visibility, content string) *http.Request {
	t.Helper()

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if visibility != "" {
		require.NoError(t, w.WriteField("visibility", visibility))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/files", buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	actor := &model.Identity{ID: 3, Username: "alice", Role: model.RoleUser}

	newApp := func(mockSvc *serviceMocks.MockFileService) *fiber.App {
		app := fiber.New()
		app.Post("/files", withIdentity(actor), UploadFile(mockSvc))
		return app
	}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Upload",
			mock.Anything, actor, mock.Anything,
			"report.pdf", "application/pdf", int64(8),
			model.VisibilityPrivate, mock.Anything,
		).Return(&model.File{ID: 1, Filename: "files/abc.pdf", OwnerID: 3}, nil).Once()

		req := uploadRequest(t, "report.pdf", "application/pdf", "PRIVATE", "12345678")
		resp, _ := newApp(mockSvc).Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body model.File
		decodeJSON(t, resp, &body)
		assert.Equal(t, int64(1), body.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file missing", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)

		req := uploadRequest(t, "", "", "PRIVATE", "")
		resp, _ := newApp(mockSvc).Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		decodeJSON(t, resp, &body)
		assert.Equal(t, "FILE_REQUIRED", body.Error.Code)
	})

	t.Run("unknown visibility", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)

		req := uploadRequest(t, "report.pdf", "application/pdf", "EVERYONE", "12345678")
		resp, _ := newApp(mockSvc).Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		decodeJSON(t, resp, &body)
		assert.Equal(t, "INVALID_VISIBILITY", body.Error.Code)
	})

	t.Run("visibility not allowed for role", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Upload",
			mock.Anything, actor, mock.Anything,
			"report.pdf", "application/pdf", int64(8),
			model.VisibilityPublic, mock.Anything,
		).Return(nil, service.ErrInvalidVisibility).Once()

		req := uploadRequest(t, "report.pdf", "application/pdf", "PUBLIC", "12345678")
		resp, _ := newApp(mockSvc).Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		decodeJSON(t, resp, &body)
		assert.Equal(t, "VISIBILITY_NOT_ALLOWED", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("too large", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Upload",
			mock.Anything, actor, mock.Anything,
			"report.pdf", "application/pdf", int64(8),
			model.VisibilityPrivate, mock.Anything,
		).Return(nil, access.ErrTooLarge).Once()

		req := uploadRequest(t, "report.pdf", "application/pdf", "PRIVATE", "12345678")
		resp, _ := newApp(mockSvc).Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		decodeJSON(t, resp, &body)
		assert.Equal(t, "FILE_TOO_LARGE", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unsupported type", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Upload",
			mock.Anything, actor, mock.Anything,
			"tool.exe", "application/octet-stream", int64(8),
			model.VisibilityPrivate, mock.Anything,
		).Return(nil, access.ErrUnsupportedType).Once()

		req := uploadRequest(t, "tool.exe", "application/octet-stream", "PRIVATE", "12345678")
		resp, _ := newApp(mockSvc).Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		decodeJSON(t, resp, &body)
		assert.Equal(t, "UNSUPPORTED_TYPE", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListFiles(t *testing.T) {
	actor := &model.Identity{ID: 3, Role: model.RoleUser}

	mockSvc := new(serviceMocks.MockFileService)
	mockSvc.On("List", mock.Anything, actor).
		Return([]model.File{{ID: 1}, {ID: 2}}, nil).Once()

	app := fiber.New()
	app.Get("/files", withIdentity(actor), ListFiles(mockSvc))

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []model.File
	decodeJSON(t, resp, &body)
	assert.Len(t, body, 2)
	mockSvc.AssertExpectations(t)
}

func TestGetFile(t *testing.T) {
	actor := &model.Identity{ID: 3, Role: model.RoleUser}

	tests := []struct {
		name       string
		path       string
		setupMocks func(svc *serviceMocks.MockFileService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			path: "/files/1",
			setupMocks: func(svc *serviceMocks.MockFileService) {
				svc.On("Get", mock.Anything, actor, int64(1)).
					Return(&model.File{ID: 1, OwnerID: 3}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "forbidden",
			path: "/files/2",
			setupMocks: func(svc *serviceMocks.MockFileService) {
				svc.On("Get", mock.Anything, actor, int64(2)).
					Return(nil, service.ErrForbidden).Once()
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name: "not found",
			path: "/files/99",
			setupMocks: func(svc *serviceMocks.MockFileService) {
				svc.On("Get", mock.Anything, actor, int64(99)).
					Return(nil, service.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid id",
			path:       "/files/abc",
			setupMocks: func(svc *serviceMocks.MockFileService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockFileService)
			tt.setupMocks(mockSvc)

			app := fiber.New()
			app.Get("/files/:id", withIdentity(actor), GetFile(mockSvc))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				var body errorPayload
				decodeJSON(t, resp, &body)
				assert.Equal(t, tt.wantCode, body.Error.Code)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDownloadFile(t *testing.T) {
	actor := &model.Identity{ID: 3, Role: model.RoleUser}

	t.Run("returns presigned url", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Download", mock.Anything, actor, int64(1)).
			Return("https://minio.local/files/abc.pdf?sig=x", nil).Once()

		app := fiber.New()
		app.Get("/files/:id/download", withIdentity(actor), DownloadFile(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/files/1/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeJSON(t, resp, &body)
		assert.Equal(t, "https://minio.local/files/abc.pdf?sig=x", body["url"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Download", mock.Anything, actor, int64(2)).
			Return("", service.ErrForbidden).Once()

		app := fiber.New()
		app.Get("/files/:id/download", withIdentity(actor), DownloadFile(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/files/2/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteFile(t *testing.T) {
	actor := &model.Identity{ID: 3, Role: model.RoleUser}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Delete", mock.Anything, actor, int64(1)).Return(nil).Once()

		app := fiber.New()
		app.Delete("/files/:id", withIdentity(actor), DeleteFile(mockSvc))

		req := httptest.NewRequest(http.MethodDelete, "/files/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		mockSvc.On("Delete", mock.Anything, actor, int64(2)).
			Return(service.ErrForbidden).Once()

		app := fiber.New()
		app.Delete("/files/:id", withIdentity(actor), DeleteFile(mockSvc))

		req := httptest.NewRequest(http.MethodDelete, "/files/2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
