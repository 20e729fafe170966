package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"

	"github.com/gabriel-vasile/mimetype"
)

// MsgInvalidImage is returned for uploads whose declared type is not an image.
const MsgInvalidImage = "The file is not valid image."

// FileStorage persists uploaded bytes under a name.
type FileStorage interface {
	Save(name string, r io.Reader) (int64, error)
	FileRemover
}

type MediaService struct {
	mediaRepo repository.MediaRepository
	files     FileStorage
	maxBytes  int64
}

// UploadMediaInput describes one multipart file part.
type UploadMediaInput struct {
	UserID      uint
	ContentType string
	Size        int64
	Reader      io.Reader
}

func NewMediaService(mediaRepo repository.MediaRepository, files FileStorage, maxBytes int64) *MediaService {
	return &MediaService{mediaRepo: mediaRepo, files: files, maxBytes: maxBytes}
}

var errTooLarge = errors.New("upload exceeds size limit")

// ExtensionFor derives the stored file extension from a declared image MIME
// type. It returns false for non-image and unregistered types.
func ExtensionFor(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", false
	}
	m := mimetype.Lookup(mediaType)
	if m == nil || m.Extension() == "" {
		return "", false
	}
	return strings.TrimPrefix(m.Extension(), "."), true
}

// Upload stores an image and returns its media row. The row is inserted first
// so the file can be named after its id; when the file cannot be written the
// row is rolled back, and when the commit fails the written file is removed.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (media *models.Media, err error) {
	ctx, span := observability.StartSpan(ctx, "MediaService.Upload")
	defer func() { span.End(err) }()

	ext, ok := ExtensionFor(in.ContentType)
	if !ok {
		observability.MediaUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewRuleViolationError(MsgInvalidImage)
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		observability.MediaUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewRuleViolationError(fmt.Sprintf("The file exceeds the %d byte limit.", s.maxBytes))
	}

	media = &models.Media{UserID: in.UserID, Ext: ext}
	var (
		written string
		size    int64
	)
	persist := func(m *models.Media) error {
		r := in.Reader
		if s.maxBytes > 0 {
			r = &limitedReader{r: in.Reader, remaining: s.maxBytes}
		}
		name := m.Filename()
		n, err := s.files.Save(name, r)
		if err != nil {
			if errors.Is(err, errTooLarge) {
				return models.NewRuleViolationError(fmt.Sprintf("The file exceeds the %d byte limit.", s.maxBytes))
			}
			return models.NewInternalError(err)
		}
		written, size = name, n
		return nil
	}

	if err := s.mediaRepo.Create(ctx, media, persist); err != nil {
		if written != "" {
			if rmErr := s.files.Remove(written); rmErr != nil {
				observability.MediaCleanupFailures.Inc()
				middleware.Logger.WarnContext(ctx, "failed to remove orphaned upload", slog.String("error", rmErr.Error()))
			}
		}
		observability.MediaUploads.WithLabelValues("failed").Inc()
		return nil, err
	}

	observability.MediaUploads.WithLabelValues("stored").Inc()
	observability.MediaUploadBytes.Observe(float64(size))
	middleware.Logger.InfoContext(ctx, "media uploaded",
		slog.Uint64("media_id", uint64(media.ID)), slog.Int64("bytes", size))
	return media, nil
}

// limitedReader returns errTooLarge once more than remaining bytes were read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errTooLarge
	}
	return n, err
}
