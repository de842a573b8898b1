package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/brojonat/gestate/upload"
)

const (
	maxUploadBytes   = 10 << 20
	maxIconBytes     = 512 << 10
	multipartMemory  = 1 << 20
	uploadFormField  = "file"
	maxImageEdgeSize = 8000
)

var defaultUploadLimits = upload.Limits{MaxWidth: maxImageEdgeSize, MaxHeight: maxImageEdgeSize}

// readUploadedFile pulls the named part out of a multipart request. Errors
// are client errors unless they wrap a MaxBytesError, which is reported as
// such.
func readUploadedFile(r *http.Request, field string) ([]byte, string, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, "", err
	}
	f, fh, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("must supply %s", field)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return b, fh.Filename, nil
}

func writeUploadReadError(w http.ResponseWriter, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeJSON(w, http.StatusRequestEntityTooLarge, defaultJSONResponse{
			Error: fmt.Sprintf("upload must not be larger than %d bytes", mbe.Limit),
		})
		return
	}
	writeBadRequestError(w, err.Error())
}

// handleUpload validates an image or SVG and stores it in the media bucket.
func handleUpload(l *slog.Logger, ms mediaStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ms == nil {
			writeJSON(w, http.StatusServiceUnavailable, defaultJSONResponse{Error: "media storage is not configured"})
			return
		}
		data, name, err := readUploadedFile(r, uploadFormField)
		if err != nil {
			writeUploadReadError(w, err)
			return
		}
		res, err := upload.Classify(name, data, defaultUploadLimits)
		if err != nil {
			writeValidationError(w, FieldErrors{uploadFormField: err.Error()})
			return
		}
		key := getMediaKey(res, name)
		if err := ms.PutMedia(r.Context(), key, res.ContentType, data); err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, UploadResponse{
			Key:         key,
			Kind:        string(res.Kind),
			ContentType: res.ContentType,
			Width:       res.Width,
			Height:      res.Height,
		})
	}
}
