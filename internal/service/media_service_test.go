package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/storage"
	"microblog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		ext         string
		ok          bool
	}{
		{"image/png", "png", true},
		{"image/jpeg", "jpg", true},
		{"image/gif; charset=binary", "gif", true},
		{"image/webp", "webp", true},
		{"text/plain", "", false},
		{"application/octet-stream", "", false},
		{"image/x-not-registered", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		ext, ok := ExtensionFor(tc.contentType)
		assert.Equal(t, tc.ok, ok, tc.contentType)
		assert.Equal(t, tc.ext, ext, tc.contentType)
	}
}

func TestMediaService_Upload(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	svc := NewMediaService(repository.NewMediaRepository(db), store, 1024)
	user := testutil.CreateUser(t, db)

	media, err := svc.Upload(context.Background(), UploadMediaInput{
		UserID:      user.ID,
		ContentType: "image/png",
		Size:        4,
		Reader:      strings.NewReader("\x89PNG"),
	})
	require.NoError(t, err)
	assert.Equal(t, "png", media.Ext)
	assert.Nil(t, media.TweetID)

	content, err := os.ReadFile(filepath.Join(dir, media.Filename()))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(content))

	var stored models.Media
	require.NoError(t, db.First(&stored, media.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestMediaService_Upload_RejectsNonImage(t *testing.T) {
	t.Parallel()

	called := false
	repo := noopMediaRepo()
	repo.createFn = func(_ context.Context, _ *models.Media, _ func(*models.Media) error) error {
		called = true
		return nil
	}
	svc := NewMediaService(repo, newMemFiles(), 0)

	_, err := svc.Upload(context.Background(), UploadMediaInput{
		UserID:      1,
		ContentType: "text/plain",
		Reader:      strings.NewReader("hi"),
	})
	assertAppError(t, err, models.CodeRuleViolated)
	assert.EqualError(t, err, MsgInvalidImage)
	assert.False(t, called)
}

func TestMediaService_Upload_TooLarge(t *testing.T) {
	t.Parallel()

	files := newMemFiles()
	svc := NewMediaService(noopMediaRepo(), files, 8)

	t.Run("declared size", func(t *testing.T) {
		_, err := svc.Upload(context.Background(), UploadMediaInput{
			UserID: 1, ContentType: "image/png", Size: 9, Reader: strings.NewReader("123456789"),
		})
		assertAppError(t, err, models.CodeRuleViolated)
	})

	t.Run("streamed size", func(t *testing.T) {
		_, err := svc.Upload(context.Background(), UploadMediaInput{
			UserID: 1, ContentType: "image/png", Size: 0, Reader: bytes.NewReader(make([]byte, 64)),
		})
		assertAppError(t, err, models.CodeRuleViolated)
		assert.False(t, files.has("1.png"))
	})
}

func TestMediaService_Upload_RemovesFileWhenCommitFails(t *testing.T) {
	t.Parallel()

	repo := noopMediaRepo()
	repo.createFn = func(_ context.Context, m *models.Media, persist func(*models.Media) error) error {
		m.ID = 42
		if err := persist(m); err != nil {
			return err
		}
		m.ID = 0
		return models.NewInternalError(errors.New("commit failed"))
	}
	files := newMemFiles()
	svc := NewMediaService(repo, files, 0)

	_, err := svc.Upload(context.Background(), UploadMediaInput{
		UserID: 1, ContentType: "image/gif", Reader: strings.NewReader("GIF89a"),
	})
	assertAppError(t, err, models.CodeInternal)
	assert.Equal(t, []string{"42.gif"}, files.removed)
	assert.False(t, files.has("42.gif"))
}

func TestMediaService_Upload_WriteFailureRollsBack(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewMediaService(repository.NewMediaRepository(db), store, 0)
	user := testutil.CreateUser(t, db)

	_, err = svc.Upload(context.Background(), UploadMediaInput{
		UserID: user.ID, ContentType: "image/png", Reader: failingReader{},
	})
	assertAppError(t, err, models.CodeInternal)

	var count int64
	require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
	assert.Zero(t, count)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
