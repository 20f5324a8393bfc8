package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"heritage-survey/model"
)

const (
	maxFileSize      = 10 << 20 // 10 MiB per file
	maxFilesPerField = 10
	maxTotalFiles    = 100

	// maxRequestSize caps the whole body: every file at the limit plus
	// headroom for the text fields. Everything stays in memory, nothing is
	// spooled to disk, so this also bounds per-request memory use.
	maxRequestSize = maxTotalFiles*maxFileSize + (1 << 20)
)

// ErrPayloadTooLarge reports a submission over the size or count limits. It
// is raised before any validation or persistence work happens.
var ErrPayloadTooLarge = errors.New("payload too large")

// ExtractImages parses the multipart body and collects uploads for the 10
// known image categories, keyed by field name. File fields outside the known
// categories are ignored without error, though they still count against the
// total-files limit. Any declared content type is accepted.
func ExtractImages(r *http.Request) (map[string][]model.ImageBlob, error) {
	if r.ContentLength > maxRequestSize {
		return nil, fmt.Errorf("%w: request body is %d bytes, limit is %d", ErrPayloadTooLarge, r.ContentLength, maxRequestSize)
	}

	if err := r.ParseMultipartForm(maxRequestSize); err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
		}
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	files := make(map[string][]model.ImageBlob, len(model.ImageCategories))
	if r.MultipartForm == nil {
		return files, nil
	}

	total := 0
	for _, headers := range r.MultipartForm.File {
		total += len(headers)
	}
	if total > maxTotalFiles {
		return nil, fmt.Errorf("%w: %d files uploaded, limit is %d per submission", ErrPayloadTooLarge, total, maxTotalFiles)
	}

	for _, category := range model.ImageCategories {
		headers := r.MultipartForm.File[category]
		if len(headers) > maxFilesPerField {
			return nil, fmt.Errorf("%w: %d files under %s, limit is %d per category", ErrPayloadTooLarge, len(headers), category, maxFilesPerField)
		}
		for _, fh := range headers {
			if fh.Size > maxFileSize {
				return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d per file", ErrPayloadTooLarge, fh.Filename, fh.Size, maxFileSize)
			}
			blob, err := readUpload(fh)
			if err != nil {
				return nil, err
			}
			files[category] = append(files[category], blob)
		}
	}
	return files, nil
}

func readUpload(fh *multipart.FileHeader) (model.ImageBlob, error) {
	file, err := fh.Open()
	if err != nil {
		return model.ImageBlob{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return model.ImageBlob{}, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	return model.ImageBlob{
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
