package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/expense-ingest/internal/parser"
)

const sampleXML = `<transactions>
  <transaction><date>2024-01-15</date><description>Groceries</description><amount>42.50</amount></transaction>
  <transaction><date>2024-01-16</date><description>Rent</description><amount>-800</amount></transaction>
</transactions>`

func setupTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	dataDir := t.TempDir()
	log := zerolog.Nop()
	h := &Handler{
		Ingestor: &parser.Ingestor{Log: &log},
		DataDir:  dataDir,
		Log:      log,
	}

	app := fiber.New()
	h.Register(app)
	return app, dataDir
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeResponse(t *testing.T, body io.Reader) UploadResponse {
	t.Helper()

	var resp UploadResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestUploadRequiresFile(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/upload", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeResponse(t, resp.Body)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	app, _ := setupTestApp(t)

	buf, contentType := multipartBody(t, "statement.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/upload", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadXML(t *testing.T) {
	app, _ := setupTestApp(t)

	buf, contentType := multipartBody(t, "transactions.xml", []byte(sampleXML))
	req := httptest.NewRequest("POST", "/upload", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp.Body)
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "Groceries", body.Transactions[0].Description)
	assert.NotEmpty(t, body.Transactions[0].ID)
}

func TestUploadMalformedFileReturns500(t *testing.T) {
	app, _ := setupTestApp(t)

	buf, contentType := multipartBody(t, "broken.xml", []byte("<transactions><transaction>"))
	req := httptest.NewRequest("POST", "/upload", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeResponse(t, resp.Body)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "parsing failed")
}

func TestTransactionsEmptyWhenNoExportOnDisk(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/transactions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp.Body)
	assert.True(t, body.Success)
	assert.NotNil(t, body.Transactions)
	assert.Empty(t, body.Transactions)
}

func TestTransactionsFromKnownExport(t *testing.T) {
	app, dataDir := setupTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "transactions.xml"), []byte(sampleXML), 0o644))

	req := httptest.NewRequest("GET", "/transactions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp.Body)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "transactions.xml", body.Transactions[0].FileName)
}

func TestTransactionsCSVFormat(t *testing.T) {
	app, dataDir := setupTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "transactions.xml"), []byte(sampleXML), 0o644))

	req := httptest.NewRequest("GET", "/transactions?format=csv", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Groceries")
	assert.Contains(t, string(raw), "Date,Description,Category,Income,Expenses,Currency")
}
