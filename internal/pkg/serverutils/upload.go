package serverutils

import (
	"fmt"
	"io"
	"mime/multipart"

	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/imagestore"

	"github.com/gabriel-vasile/mimetype"
)

var allowedImageTypes = []string{"image/jpeg", "image/png"}

// ReadImageUpload loads a multipart image into memory after checking its size
// and sniffing its content type. The client-declared type is ignored.
func ReadImageUpload(fh *multipart.FileHeader, maxSize int64) (*imagestore.Upload, error) {
	if fh.Size > maxSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File is too large (max %d bytes)", maxSize))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperror.BadRequestWrap("Could not read uploaded file", err)
	}
	defer src.Close()

	// Read one byte past the limit to catch a lying Size header
	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, apperror.BadRequestWrap("Could not read uploaded file", err)
	}
	if int64(len(data)) > maxSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File is too large (max %d bytes)", maxSize))
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, apperror.BadRequest("Validation failed (expected type is jpg, jpeg or png)")
	}

	return &imagestore.Upload{
		Filename:    fh.Filename,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
		Data:        data,
	}, nil
}
