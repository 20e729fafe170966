package server

import (
	"net/http"
	"strings"
	"testing"

	"microblog/internal/models"
	"microblog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_SingleTweet(t *testing.T) {
	env := newTestEnv(t, false)
	alice := testutil.CreateUser(t, env.db)

	status, body := env.do(t, http.MethodPost, "/api/tweets", alice.APIKey, map[string]interface{}{"tweet_data": "hello"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["result"])
	tweetID := body["tweet_id"].(float64)

	status, body = env.do(t, http.MethodGet, "/api/tweets", alice.APIKey, nil)
	require.Equal(t, http.StatusOK, status)
	tweets := body["tweets"].([]interface{})
	require.Len(t, tweets, 1)
	assert.Equal(t, map[string]interface{}{
		"id":          tweetID,
		"content":     "hello",
		"attachments": []interface{}{},
		"author":      map[string]interface{}{"id": float64(alice.ID), "name": alice.Name},
		"likes":       []interface{}{},
	}, tweets[0])
}

func TestCreateTweet_Validation(t *testing.T) {
	env := newTestEnv(t, false)
	alice := testutil.CreateUser(t, env.db)

	status, body := env.do(t, http.MethodPost, "/api/tweets", alice.APIKey, map[string]interface{}{"tweet_data": strings.Repeat("x", 50001)})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.CodeValidation, body["error_type"])

	status, _ = env.do(t, http.MethodPost, "/api/tweets", alice.APIKey, map[string]interface{}{"tweet_data": ""})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = env.do(t, http.MethodPost, "/api/tweets", alice.APIKey, map[string]interface{}{"tweet_data": 12})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestLikeEndpoints(t *testing.T) {
	env := newTestEnv(t, false)
	alice := testutil.CreateUser(t, env.db)
	bob := testutil.CreateUser(t, env.db)
	tweet := testutil.CreateTweet(t, env.db, alice, "likeable")
	likes := idPath("/api/tweets/%d/likes", tweet.ID)

	status, _ := env.do(t, http.MethodPost, likes, bob.APIKey, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodPost, likes, bob.APIKey, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeConflict, body["error_type"])

	status, body = env.do(t, http.MethodPost, "/api/tweets/9999/likes", bob.APIKey, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeNotFound, body["error_type"])

	status, _ = env.do(t, http.MethodDelete, likes, bob.APIKey, nil)
	assert.Equal(t, http.StatusOK, status)
	status, body = env.do(t, http.MethodDelete, likes, bob.APIKey, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeNotFound, body["error_type"])
}

func TestFeed_FollowedAndRanked(t *testing.T) {
	env := newTestEnv(t, false)
	viewer := testutil.CreateUser(t, env.db)
	followed := testutil.CreateUser(t, env.db)
	stranger := testutil.CreateUser(t, env.db)

	status, _ := env.do(t, http.MethodPost, idPath("/api/users/%d/follow", followed.ID), viewer.APIKey, nil)
	require.Equal(t, http.StatusOK, status)

	mine := testutil.CreateTweet(t, env.db, viewer, "mine")
	liked := testutil.CreateTweet(t, env.db, followed, "liked")
	testutil.CreateTweet(t, env.db, stranger, "hidden")
	testutil.Like(t, env.db, stranger, liked)

	status, body := env.do(t, http.MethodGet, "/api/tweets", viewer.APIKey, nil)
	require.Equal(t, http.StatusOK, status)
	tweets := body["tweets"].([]interface{})
	require.Len(t, tweets, 2)
	assert.Equal(t, float64(liked.ID), tweets[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(mine.ID), tweets[1].(map[string]interface{})["id"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"user_id": float64(stranger.ID), "name": stranger.Name},
	}, tweets[0].(map[string]interface{})["likes"])
}

func TestDeleteTweet(t *testing.T) {
	env := newTestEnv(t, false)
	alice := testutil.CreateUser(t, env.db)
	bob := testutil.CreateUser(t, env.db)
	tweet := testutil.CreateTweet(t, env.db, alice, "short lived")
	testutil.Like(t, env.db, bob, tweet)
	path := idPath("/api/tweets/%d", tweet.ID)

	status, body := env.do(t, http.MethodDelete, path, bob.APIKey, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeForbidden, body["error_type"])

	status, _ = env.do(t, http.MethodDelete, path, alice.APIKey, nil)
	require.Equal(t, http.StatusOK, status)

	var likes int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)

	status, body = env.do(t, http.MethodDelete, path, alice.APIKey, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeNotFound, body["error_type"])
}
