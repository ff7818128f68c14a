package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/pennyledger/expense-ingest/internal/models"
	"github.com/pennyledger/expense-ingest/internal/parser"
	"github.com/pennyledger/expense-ingest/internal/writer"
)

// UploadResponse is the JSON body returned by POST /upload and
// GET /transactions.
type UploadResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
}

// Handler wires the ingestion pipeline to the HTTP surface.
type Handler struct {
	Ingestor *parser.Ingestor
	// DataDir is where GET /transactions looks for known export files.
	DataDir string
	Log     zerolog.Logger
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/upload", h.HandleUpload)
	app.Get("/transactions", h.HandleTransactions)
	app.Get("/api/health", h.HandleHealth)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleUpload ingests a multipart-uploaded XLSX or XML file and
// returns the normalized transactions.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	if _, err := parser.DetectFormat(fileHeader.Filename); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	txns, err := h.Ingestor.Ingest(fileHeader.Filename, data)
	if err != nil {
		h.Log.Error().Err(err).Str("file", fileHeader.Filename).Msg("ingestion failed")
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("parsing failed: %v", err))
	}

	return c.JSON(UploadResponse{
		Success:      true,
		Count:        len(txns),
		Transactions: txns,
	})
}

// HandleTransactions ingests the well-known export file from the data
// directory (transactions.xlsx, falling back to transactions.xml).
// With ?format=csv the result streams as CSV instead of JSON.
func (h *Handler) HandleTransactions(c *fiber.Ctx) error {
	name, data, err := h.readKnownExport()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No export on disk yet: an empty ledger, not a failure.
			return c.JSON(UploadResponse{Success: true, Transactions: []models.Transaction{}})
		}
		h.Log.Error().Err(err).Msg("reading transactions export")
		return writeError(c, fiber.StatusInternalServerError, "Failed to read transactions file.")
	}

	txns, err := h.Ingestor.Ingest(name, data)
	if err != nil {
		h.Log.Error().Err(err).Str("file", name).Msg("ingestion failed")
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("parsing failed: %v", err))
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.Write(&buf, txns); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "CSV generation failed.")
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		return c.Send(buf.Bytes())
	}

	return c.JSON(UploadResponse{
		Success:      true,
		Count:        len(txns),
		Transactions: txns,
	})
}

func (h *Handler) readKnownExport() (string, []byte, error) {
	for _, name := range []string{"transactions.xlsx", "transactions.xml"} {
		data, err := os.ReadFile(filepath.Join(h.DataDir, name))
		if err == nil {
			return name, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, os.ErrNotExist
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(UploadResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
