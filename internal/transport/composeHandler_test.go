package transport

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/iconify/internal/entity"
	"github.com/ds124wfegd/iconify/internal/pkg/processor"
	"github.com/ds124wfegd/iconify/internal/service"
	"github.com/ds124wfegd/iconify/internal/transport/middleware"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewComposeService(processor.NewImageProcessor(processor.DefaultOptions()), entity.NamingPrefixed)
	return InitRoutes(NewComposeHandler(svc, 1<<20))
}

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := mw.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/compose", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestComposeHandler(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name       string
		files      map[string][]byte
		fields     map[string]string
		wantStatus int
		check      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "padded placement",
			files: map[string][]byte{
				"profile": pngBytes(t, 300, 300, color.NRGBA{A: 255}),
				"icon":    pngBytes(t, 50, 50, color.NRGBA{G: 255, A: 255}),
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, "(210,210)-(290,290)", w.Header().Get("X-Icon-Rect"))
				img, err := png.Decode(w.Body)
				require.NoError(t, err)
				assert.Equal(t, color.NRGBA{G: 255, A: 255}, color.NRGBAModel.Convert(img.At(250, 250)))
			},
		},
		{
			name: "simple placement override",
			files: map[string][]byte{
				"profile": pngBytes(t, 300, 300, color.NRGBA{A: 255}),
				"icon":    pngBytes(t, 50, 50, color.NRGBA{G: 255, A: 255}),
			},
			fields:     map[string]string{"placement": "simple", "grayscale": "true"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "(200,200)-(300,300)", w.Header().Get("X-Icon-Rect"))
			},
		},
		{
			name:       "missing icon",
			files:      map[string][]byte{"profile": pngBytes(t, 10, 10, color.NRGBA{A: 255})},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "undecodable profile",
			files: map[string][]byte{
				"profile": []byte("definitely not a png"),
				"icon":    pngBytes(t, 5, 5, color.NRGBA{A: 255}),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad placement",
			files: map[string][]byte{
				"profile": pngBytes(t, 10, 10, color.NRGBA{A: 255}),
				"icon":    pngBytes(t, 5, 5, color.NRGBA{A: 255}),
			},
			fields:     map[string]string{"placement": "top-left"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad grayscale flag",
			files: map[string][]byte{
				"profile": pngBytes(t, 10, 10, color.NRGBA{A: 255}),
				"icon":    pngBytes(t, 5, 5, color.NRGBA{A: 255}),
			},
			fields:     map[string]string{"grayscale": "sometimes"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest(t, tt.files, tt.fields))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestHealthAndRequestID(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
	assert.JSONEq(t, `{"status":"ok","service":"iconify"}`, w.Body.String())
}

func TestUploadTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewComposeService(processor.NewImageProcessor(processor.DefaultOptions()), entity.NamingPrefixed)
	router := InitRoutes(NewComposeHandler(svc, 64))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, map[string][]byte{
		"profile": pngBytes(t, 100, 100, color.NRGBA{R: 1, A: 255}),
		"icon":    pngBytes(t, 10, 10, color.NRGBA{A: 255}),
	}, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
