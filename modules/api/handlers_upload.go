package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// maxUploadSize caps each uploaded file at 5MB.
	maxUploadSize = 5 << 20
	// maxFilesPerUpload caps the multi-file endpoint.
	maxFilesPerUpload = 5
)

// allowedExtensions is the upload allow-list.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// UploadFile accepts one file under the "file" field. CSV content feeds the
// task ingestion pipeline; spreadsheets are stored as opaque attachments.
func (h *Handlers) UploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "No file uploaded",
			Detail:  "Please select a file to upload",
		})
	}

	if rej := validateUpload(fh); rej != nil {
		return c.Status(fiber.StatusBadRequest).JSON(rej)
	}

	data, err := readUpload(fh)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Error reading uploaded file",
			Detail:  err.Error(),
		})
	}

	file := UploadedFile{
		OriginalName: fh.Filename,
		Filename:     fh.Filename,
		Size:         fh.Size,
		Mimetype:     uploadContentType(fh),
	}

	if isCSVUpload(fh) {
		ingested, err := h.tasks.Ingest(c.UserContext(), fh.Filename, data)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "Error processing CSV file",
				Detail:  err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(UploadResponse{
			Message: "File uploaded successfully",
			File:    file,
			CsvData: &CsvSummary{
				RecordsProcessed: ingested.RecordsProcessed,
				Message:          fmt.Sprintf("%d records saved to database", ingested.RecordsProcessed),
			},
		})
	}

	att, err := h.storeAttachment(c, fh, data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Error storing uploaded file",
			Detail:  err.Error(),
		})
	}
	file.Filename = att

	return c.Status(fiber.StatusCreated).JSON(UploadResponse{
		Message: "File uploaded successfully",
		File:    file,
	})
}

// UploadMultipleFiles accepts up to five files under the "files" field.
func (h *Handlers) UploadMultipleFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "No files uploaded",
			Detail:  "Please select files to upload",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "No files uploaded",
			Detail:  "Please select files to upload",
		})
	}
	if len(files) > maxFilesPerUpload {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Upload error",
			Detail:  fmt.Sprintf("A maximum of %d files can be uploaded at once", maxFilesPerUpload),
		})
	}

	csvFiles := []CsvFileSummary{}
	regularFiles := []UploadedFile{}

	for _, fh := range files {
		if rej := validateUpload(fh); rej != nil {
			return c.Status(fiber.StatusBadRequest).JSON(rej)
		}

		data, err := readUpload(fh)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: "Error reading uploaded file",
				Detail:  err.Error(),
			})
		}

		if isCSVUpload(fh) {
			ingested, err := h.tasks.Ingest(c.UserContext(), fh.Filename, data)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
					Message: fmt.Sprintf("Error processing CSV file: %s", fh.Filename),
					Detail:  err.Error(),
				})
			}
			csvFiles = append(csvFiles, CsvFileSummary{
				OriginalName:     fh.Filename,
				RecordsProcessed: ingested.RecordsProcessed,
			})
			continue
		}

		att, err := h.storeAttachment(c, fh, data)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: "Error storing uploaded file",
				Detail:  err.Error(),
			})
		}
		regularFiles = append(regularFiles, UploadedFile{
			OriginalName: fh.Filename,
			Filename:     att,
			Size:         fh.Size,
			Mimetype:     uploadContentType(fh),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(MultiUploadResponse{
		Message:      "Files uploaded successfully",
		Count:        len(files),
		CsvFiles:     csvFiles,
		RegularFiles: regularFiles,
	})
}

// ListAttachments returns metadata for every stored non-CSV upload.
func (h *Handlers) ListAttachments(c *fiber.Ctx) error {
	if h.attachments == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "Attachment storage is not configured",
		})
	}

	list, err := h.attachments.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Error listing attachments",
			Detail:  err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(AttachmentsResponse{
		Message:     "Attachments retrieved successfully",
		Count:       len(list),
		Attachments: list,
	})
}

// storeAttachment persists a non-CSV upload and returns its stored id.
func (h *Handlers) storeAttachment(c *fiber.Ctx, fh *multipart.FileHeader, data []byte) (string, error) {
	if h.attachments == nil {
		return "", fmt.Errorf("attachment storage is not configured")
	}
	att, err := h.attachments.Store(c.UserContext(), fh.Filename, data, uploadContentType(fh))
	if err != nil {
		return "", err
	}
	return att.ID, nil
}

// validateUpload enforces the extension allow-list and the size cap.
// It returns a non-nil rejection body when the file is not acceptable.
func validateUpload(fh *multipart.FileHeader) *ErrorResponse {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return &ErrorResponse{
			Message: "File upload failed",
			Detail:  "Only CSV, XLSX and XLS files are allowed",
		}
	}
	if fh.Size > maxUploadSize {
		return &ErrorResponse{
			Message: "File too large",
			Detail:  "File size must be less than 5MB",
		}
	}
	return nil
}

// readUpload reads the whole multipart file into memory.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// isCSVUpload decides whether a file feeds the ingestion pipeline.
func isCSVUpload(fh *multipart.FileHeader) bool {
	if strings.ToLower(filepath.Ext(fh.Filename)) == ".csv" {
		return true
	}
	return uploadContentType(fh) == "text/csv"
}

// uploadContentType returns the declared content type with a fallback.
func uploadContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
