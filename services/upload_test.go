package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploader(t *testing.T, handler http.HandlerFunc) (*ImageUploader, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewImageUploader(srv.URL, "/api/upload", newTestCreds(t)), &hits
}

func TestUploadRejectsOversizedAssetBeforeNetwork(t *testing.T) {
	uploader, hits := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"url":"/img/x.jpg"}`))
	})

	asset := UploadAsset{
		FileName:    "huge.jpg",
		ContentType: "image/jpeg",
		Size:        6 << 20,
	}
	_, err := uploader.Upload(context.Background(), asset)
	assert.ErrorIs(t, err, ErrAssetTooLarge)
	assert.Zero(t, hits.Load(), "no network call may happen for an oversized asset")
}

func TestUploadRejectsNonImageBeforeNetwork(t *testing.T) {
	uploader, hits := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"url":"/img/x.jpg"}`))
	})

	asset := UploadAsset{
		FileName:    "notes.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF"),
	}
	_, err := uploader.Upload(context.Background(), asset)
	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Zero(t, hits.Load())
}

func TestUploadReturnsURLFromDocumentedContract(t *testing.T) {
	uploader, _ := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "ring.png", header.Filename)
		w.Write([]byte(`{"success":true,"url":"https://cdn.example.com/ring.png"}`))
	})

	url, err := uploader.Upload(context.Background(), UploadAsset{
		FileName:    "ring.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ring.png", url)
}

func TestLegacyResponseShapesProbeInPriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"paths array", `{"success":true,"paths":["/a.jpg","/b.jpg"]}`, "/a.jpg"},
		{"nested images array", `{"success":true,"data":{"images":["/nested.jpg"]}}`, "/nested.jpg"},
		{"nested imageUrl", `{"success":true,"data":{"imageUrl":"/nested-url.jpg"}}`, "/nested-url.jpg"},
		{"nested url", `{"success":true,"data":{"url":"/nested-plain.jpg"}}`, "/nested-plain.jpg"},
		{"top-level imageUrl", `{"success":true,"imageUrl":"/top.jpg"}`, "/top.jpg"},
		{"bare data string", `{"success":true,"data":"/bare.jpg"}`, "/bare.jpg"},
		{"paths wins over everything", `{"paths":["/p.jpg"],"imageUrl":"/i.jpg","data":{"url":"/d.jpg"}}`, "/p.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			url, err := urlFromLegacyResponse([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, url)
		})
	}
}

func TestUnrecognisedUploadResponseFails(t *testing.T) {
	_, err := urlFromUploadResponse([]byte(`{"success":true,"something":"else"}`))
	assert.ErrorIs(t, err, ErrNoUploadURL)
}
