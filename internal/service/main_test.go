package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn  func(context.Context, *models.Tweet, []uint) error
	getByIDFn func(context.Context, uint) (*models.Tweet, error)
	deleteFn  func(context.Context, uint) error
	likeFn    func(context.Context, uint, uint) error
	unlikeFn  func(context.Context, uint, uint) (bool, error)
	feedFn    func(context.Context, []uint) ([]models.Tweet, error)
}

func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet, mediaIDs []uint) error {
	return s.createFn(ctx, tweet, mediaIDs)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tweetRepoStub) Like(ctx context.Context, userID, tweetID uint) error {
	return s.likeFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) Unlike(ctx context.Context, userID, tweetID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) Feed(ctx context.Context, authorIDs []uint) ([]models.Tweet, error) {
	return s.feedFn(ctx, authorIDs)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn:  func(_ context.Context, t *models.Tweet, _ []uint) error { t.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Tweet, error) { return &models.Tweet{ID: id}, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		feedFn:    func(_ context.Context, _ []uint) ([]models.Tweet, error) { return nil, nil },
	}
}

// mediaRepoStub is a stub for repository.MediaRepository.
type mediaRepoStub struct {
	createFn         func(context.Context, *models.Media, func(*models.Media) error) error
	getByIDsFn       func(context.Context, []uint) ([]models.Media, error)
	findAttachableFn func(context.Context, uint, []uint) ([]models.Media, error)
}

func (s *mediaRepoStub) Create(ctx context.Context, media *models.Media, persist func(*models.Media) error) error {
	return s.createFn(ctx, media, persist)
}
func (s *mediaRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Media, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *mediaRepoStub) FindAttachable(ctx context.Context, userID uint, ids []uint) ([]models.Media, error) {
	return s.findAttachableFn(ctx, userID, ids)
}

func noopMediaRepo() *mediaRepoStub {
	return &mediaRepoStub{
		createFn: func(_ context.Context, m *models.Media, persist func(*models.Media) error) error {
			m.ID = 1
			return persist(m)
		},
		getByIDsFn:       func(_ context.Context, _ []uint) ([]models.Media, error) { return nil, nil },
		findAttachableFn: func(_ context.Context, _ uint, _ []uint) ([]models.Media, error) { return nil, nil },
	}
}

// memFiles is an in-memory FileStorage.
type memFiles struct {
	mu        sync.Mutex
	files     map[string][]byte
	removeErr error
	removed   []string
}

func newMemFiles() *memFiles {
	return &memFiles{files: map[string][]byte{}}
}

func (m *memFiles) Save(name string, r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = b
	return int64(len(b)), nil
}

func (m *memFiles) Remove(names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, names...)
	if m.removeErr != nil {
		return m.removeErr
	}
	for _, n := range names {
		delete(m.files, n)
	}
	return nil
}

func (m *memFiles) has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

// assertAppError asserts that err is an AppError carrying code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
