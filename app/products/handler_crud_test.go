package products

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/models"
)

// --- Helpers ---

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.WriteString(part, "fake image bytes")
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// --- Tests: POST /products ---

func TestHandleCreate(t *testing.T) {
	t.Run("Success without image", func(t *testing.T) {
		repo := &MockProductRepo{}
		images := &MockImageStore{}
		router := newRouter(NewProductHandler(repo, images))

		body, contentType := multipartBody(t, map[string]string{
			"name":        "Notebook Pro",
			"category_id": "1",
			"quantity":    "8",
			"price":       "4599.90",
			"min_stock":   "2",
			"description": "16GB RAM",
		}, "", "")

		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, repo.lastSaved)
		assert.Equal(t, "Notebook Pro", repo.lastSaved.Name)
		assert.Equal(t, 8, repo.lastSaved.Quantity)
		assert.Equal(t, 2, repo.lastSaved.MinStock)
		assert.Equal(t, "4599.9", repo.lastSaved.Price.String())
		assert.Empty(t, repo.lastSaved.Image)
		assert.Empty(t, images.savedFiles, "no image part, nothing stored")

		var resp Product
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, 4599.90, resp.Price)
	})

	t.Run("Success with image", func(t *testing.T) {
		repo := &MockProductRepo{}
		images := &MockImageStore{SaveRef: "/uploads/abc.png"}
		router := newRouter(NewProductHandler(repo, images))

		body, contentType := multipartBody(t, map[string]string{
			"name": "Webcam HD",
		}, "image", "webcam.png")

		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"webcam.png"}, images.savedFiles)
		require.NotNil(t, repo.lastSaved)
		assert.Equal(t, "/uploads/abc.png", repo.lastSaved.Image)
	})

	t.Run("Missing name returns 400", func(t *testing.T) {
		repo := &MockProductRepo{}
		router := newRouter(NewProductHandler(repo, &MockImageStore{}))

		body, contentType := multipartBody(t, map[string]string{"quantity": "5"}, "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, repo.lastSaved)
	})

	t.Run("Negative quantity returns 400", func(t *testing.T) {
		router := newRouter(NewProductHandler(&MockProductRepo{}, &MockImageStore{}))

		body, contentType := multipartBody(t, map[string]string{
			"name":     "Bad",
			"quantity": "-3",
		}, "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// --- Tests: PUT /products/:id ---

func TestHandleUpdate(t *testing.T) {
	t.Run("Quantity is never overwritten by an edit", func(t *testing.T) {
		existing := newTestProduct(7, "Impressora", 1, 42, 5, 650.00)
		repo := &MockProductRepo{SourceProducts: []models.Product{existing}}
		router := newRouter(NewProductHandler(repo, &MockImageStore{}))

		body, contentType := multipartBody(t, map[string]string{
			"name":     "Impressora Laser",
			"quantity": "999", // must be ignored
			"price":    "700.00",
		}, "", "")
		req := httptest.NewRequest(http.MethodPut, "/api/products/7", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, repo.lastUpdated)
		assert.Equal(t, "Impressora Laser", repo.lastUpdated.Name)
		assert.Equal(t, 42, repo.lastUpdated.Quantity, "stock changes only through the ledger")
	})

	t.Run("Keeps previous image when none uploaded", func(t *testing.T) {
		existing := newTestProduct(7, "Impressora", 1, 42, 5, 650.00)
		existing.Image = "/uploads/old.png"
		repo := &MockProductRepo{SourceProducts: []models.Product{existing}}
		images := &MockImageStore{}
		router := newRouter(NewProductHandler(repo, images))

		body, contentType := multipartBody(t, map[string]string{"name": "Impressora"}, "", "")
		req := httptest.NewRequest(http.MethodPut, "/api/products/7", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, repo.lastUpdated)
		assert.Equal(t, "/uploads/old.png", repo.lastUpdated.Image)
		assert.Empty(t, images.removedRefs)
	})

	t.Run("Replacing the image removes the old file", func(t *testing.T) {
		existing := newTestProduct(7, "Impressora", 1, 42, 5, 650.00)
		existing.Image = "/uploads/old.png"
		repo := &MockProductRepo{SourceProducts: []models.Product{existing}}
		images := &MockImageStore{SaveRef: "/uploads/new.png"}
		router := newRouter(NewProductHandler(repo, images))

		body, contentType := multipartBody(t, map[string]string{"name": "Impressora"}, "image", "new.png")
		req := httptest.NewRequest(http.MethodPut, "/api/products/7", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, repo.lastUpdated)
		assert.Equal(t, "/uploads/new.png", repo.lastUpdated.Image)
		assert.Equal(t, []string{"/uploads/old.png"}, images.removedRefs)
	})

	t.Run("Unknown product returns 404", func(t *testing.T) {
		repo := &MockProductRepo{}
		router := newRouter(NewProductHandler(repo, &MockImageStore{}))

		body, contentType := multipartBody(t, map[string]string{"name": "Ghost"}, "", "")
		req := httptest.NewRequest(http.MethodPut, "/api/products/99", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// --- Tests: DELETE /products/:id ---

func TestHandleDelete(t *testing.T) {
	t.Run("Success removes stored image best-effort", func(t *testing.T) {
		existing := newTestProduct(3, "Scanner", 1, 1, 1, 300.00)
		existing.Image = "/uploads/scanner.jpg"
		repo := &MockProductRepo{SourceProducts: []models.Product{existing}}
		images := &MockImageStore{}
		router := newRouter(NewProductHandler(repo, images))

		req := httptest.NewRequest(http.MethodDelete, "/api/products/3", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []uint{3}, repo.deletedIDs)
		assert.Equal(t, []string{"/uploads/scanner.jpg"}, images.removedRefs)
	})

	t.Run("Unknown product returns 404", func(t *testing.T) {
		router := newRouter(NewProductHandler(&MockProductRepo{}, &MockImageStore{}))

		req := httptest.NewRequest(http.MethodDelete, "/api/products/404", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Invalid id returns 400", func(t *testing.T) {
		router := newRouter(NewProductHandler(&MockProductRepo{}, &MockImageStore{}))

		req := httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
