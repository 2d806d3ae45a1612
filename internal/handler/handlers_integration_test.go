package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideasnet/server/internal/config"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupServer wires the full router against a fresh in-memory SQLite
// database. Redis, Meilisearch and Cloudinary are absent; the features they
// back degrade as in production without them.
func setupServer(t *testing.T) *gin.Engine {
	engine, _ := setupServerDB(t)
	return engine
}

// setupServerDB additionally exposes the database handle for tests that need
// to seed rows the API cannot create, such as OAuth-only accounts.
func setupServerDB(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Idea{},
		&model.Comment{},
		&model.Vote{},
		&model.Message{},
		&model.Notification{},
	))

	cfg := &config.Config{
		AppEnv:           "test",
		JWTSecret:        "test-secret",
		ClientURL:        "http://localhost:3000",
		RateLimitMessage: time.Second,
		RateLimitIdea:    time.Second,
	}

	return server.New(db, nil, nil, nil, cfg).Engine(), db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerUser creates an account and returns (token, userID).
func registerUser(t *testing.T, engine *gin.Engine, username string) (string, string) {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     username + "@example.com",
		"username":  username,
		"firstName": "Test",
		"lastName":  "User",
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

func createIdea(t *testing.T, engine *gin.Engine, token, title string, public bool) map[string]interface{} {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/api/ideas", map[string]interface{}{
		"title":       title,
		"description": "A description",
		"problem":     "A problem",
		"solution":    "A solution",
		"isPublic":    public,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)
}

func TestRegister(t *testing.T) {
	engine := setupServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "alice@example.com",
		"username":  "alice",
		"firstName": "Alice",
		"lastName":  "Smith",
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "ENTHUSIAST", user["role"])
	assert.NotContains(t, rec.Body.String(), "password123")
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "password hash must never be serialized")
}

func TestRegisterValidation(t *testing.T) {
	engine := setupServer(t)

	// Missing fields carry a machine-readable fields list.
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "bob@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Missing required fields", body["error"])
	fields := body["fields"].([]interface{})
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "first name")
	assert.Contains(t, fields, "last name")

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "not-an-email",
		"username":  "bob",
		"firstName": "Bob",
		"lastName":  "Jones",
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decode(t, rec)["error"])

	// Pattern-passing emails still hit the edge rules.
	emailCases := map[string]string{
		"a..b@example.com": "consecutive dots",
		".a@example.com":   "start with a dot",
		"a@example":        "valid email address",
	}
	for email, fragment := range emailCases {
		rec = doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
			"email":     email,
			"username":  "bob",
			"firstName": "Bob",
			"lastName":  "Jones",
			"password":  "password123",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, email)
		body = decode(t, rec)
		assert.Equal(t, "Invalid email format", body["error"], email)
		assert.Contains(t, body["message"], fragment, email)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "bob@example.com",
		"username":  "bob",
		"firstName": "Bob",
		"lastName":  "Jones",
		"password":  "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password too short", decode(t, rec)["error"])

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "bob@example.com",
		"username":  "bad name!",
		"firstName": "Bob",
		"lastName":  "Jones",
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid username format", decode(t, rec)["error"])
}

func TestRegisterDuplicate(t *testing.T) {
	engine := setupServer(t)
	registerUser(t, engine, "carol")

	// Duplicate email reports 400, not 409.
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "carol@example.com",
		"username":  "carol2",
		"firstName": "Carol",
		"lastName":  "Doe",
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "User already exists", body["error"])
	assert.Contains(t, body["message"], "email")

	// Email comparison is case-insensitive.
	rec = doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "Carol@Example.COM",
		"username":  "carol3",
		"firstName": "Carol",
		"lastName":  "Doe",
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "User already exists", body["error"])
	assert.Contains(t, body["message"], "email")
}

func TestLogin(t *testing.T) {
	engine := setupServer(t)
	registerUser(t, engine, "dave")

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "dave@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.NotEmpty(t, user["lastActive"])

	// Wrong password and unknown email produce the same message, so
	// accounts can't be enumerated.
	rec = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "dave@example.com",
		"password": "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPass := decode(t, rec)["error"]

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPass, decode(t, rec)["error"])
}

func TestLoginOAuthOnlyAccount(t *testing.T) {
	engine, db := setupServerDB(t)

	// Accounts created through Google have no password hash.
	googleID := "google-123456"
	require.NoError(t, db.Create(&model.User{
		Email:     "oauth@example.com",
		Username:  "oauthonly",
		FirstName: "OAuth",
		LastName:  "User",
		GoogleID:  &googleID,
	}).Error)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "oauth@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t,
		"This account was created with Google sign-in. Please use Google sign-in to access your account.",
		decode(t, rec)["error"])
}

func TestVerify(t *testing.T) {
	engine := setupServer(t)
	token, userID := registerUser(t, engine, "erin")

	rec := doJSON(t, engine, http.MethodGet, "/api/auth/verify", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])

	rec = doJSON(t, engine, http.MethodGet, "/api/auth/verify", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/auth/verify", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenQueryFallback(t *testing.T) {
	engine := setupServer(t)
	token, _ := registerUser(t, engine, "frank")

	rec := doJSON(t, engine, http.MethodGet, "/api/auth/verify?token="+token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdeaCreateSlug(t *testing.T) {
	engine := setupServer(t)
	token, _ := registerUser(t, engine, "grace")

	idea := createIdea(t, engine, token, "My Big Idea", true)
	slug := idea["slug"].(string)
	assert.Regexp(t, regexp.MustCompile(`^my-big-idea-[a-z0-9]{5}$`), slug)

	// Same title, distinct suffixes.
	other := createIdea(t, engine, token, "My Big Idea", true)
	assert.NotEqual(t, slug, other["slug"])
}

func TestIdeaCreateValidation(t *testing.T) {
	engine := setupServer(t)
	token, _ := registerUser(t, engine, "heidi")

	rec := doJSON(t, engine, http.MethodPost, "/api/ideas", map[string]string{
		"title": "Only a title",
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", decode(t, rec)["error"])

	rec = doJSON(t, engine, http.MethodPost, "/api/ideas", map[string]string{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdeaVisibility(t *testing.T) {
	engine := setupServer(t)
	ownerToken, _ := registerUser(t, engine, "ivan")
	otherToken, _ := registerUser(t, engine, "judy")

	private := createIdea(t, engine, ownerToken, "Secret Plan", false)
	public := createIdea(t, engine, ownerToken, "Open Plan", true)
	privateSlug := private["slug"].(string)
	publicSlug := public["slug"].(string)

	// The public listing hides private ideas.
	rec := doJSON(t, engine, http.MethodGet, "/api/ideas", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, publicSlug, list[0]["slug"])

	// A private idea is a 404 for everyone but its author.
	rec = doJSON(t, engine, http.MethodGet, "/api/ideas/"+privateSlug, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/ideas/"+privateSlug, nil, otherToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/ideas/"+privateSlug, nil, ownerToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdeaUpdateOwnership(t *testing.T) {
	engine := setupServer(t)
	ownerToken, _ := registerUser(t, engine, "kate")
	otherToken, _ := registerUser(t, engine, "leo")

	idea := createIdea(t, engine, ownerToken, "Original Title", true)
	ideaID := idea["id"].(string)
	originalSlug := idea["slug"].(string)

	rec := doJSON(t, engine, http.MethodPut, "/api/ideas/"+ideaID, map[string]string{
		"title": "Hijacked",
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A non-title update keeps the slug.
	rec = doJSON(t, engine, http.MethodPut, "/api/ideas/"+ideaID, map[string]string{
		"description": "New description",
	}, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.Equal(t, originalSlug, updated["slug"])
	assert.Equal(t, "New description", updated["description"])

	// A title change regenerates it.
	rec = doJSON(t, engine, http.MethodPut, "/api/ideas/"+ideaID, map[string]string{
		"title": "Renamed Idea",
	}, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)
	renamed := decode(t, rec)
	assert.NotEqual(t, originalSlug, renamed["slug"])
	assert.Regexp(t, regexp.MustCompile(`^renamed-idea-[a-z0-9]{5}$`), renamed["slug"])
}

func TestIdeaDelete(t *testing.T) {
	engine := setupServer(t)
	ownerToken, _ := registerUser(t, engine, "mallory")
	otherToken, _ := registerUser(t, engine, "nick")

	idea := createIdea(t, engine, ownerToken, "Doomed Idea", true)
	ideaID := idea["id"].(string)
	slug := idea["slug"].(string)

	rec := doJSON(t, engine, http.MethodDelete, "/api/ideas/"+ideaID, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, "/api/ideas/"+ideaID, nil, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/ideas/"+slug, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	engine := setupServer(t)
	authorToken, _ := registerUser(t, engine, "olivia")
	commenterToken, _ := registerUser(t, engine, "peggy")

	idea := createIdea(t, engine, authorToken, "Discussable Idea", true)
	ideaID := idea["id"].(string)

	rec := doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content": "Great idea!",
		"ideaId":  ideaID,
		"type":    "FEEDBACK",
	}, commenterToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode(t, rec)
	commentID := comment["id"].(string)
	assert.Equal(t, "peggy", comment["author"].(map[string]interface{})["username"])

	// Reply one level deep.
	rec = doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content":  "Thanks!",
		"ideaId":   ideaID,
		"parentId": commentID,
	}, authorToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/comments/idea/"+ideaID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	require.Len(t, list, 1)
	replies := list[0]["replies"].([]interface{})
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]interface{})
	assert.Equal(t, "Thanks!", reply["content"])

	// Editing sets the flag.
	rec = doJSON(t, engine, http.MethodPut, "/api/comments/"+commentID, map[string]string{
		"content": "Great idea! (edited)",
	}, commenterToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["isEdited"])

	// Only the author may edit.
	rec = doJSON(t, engine, http.MethodPut, "/api/comments/"+commentID, map[string]string{
		"content": "Vandalized",
	}, authorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCommentSoftDelete(t *testing.T) {
	engine := setupServer(t)
	token, _ := registerUser(t, engine, "quinn")

	idea := createIdea(t, engine, token, "Commented Idea", true)
	ideaID := idea["id"].(string)

	first := doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content": "First",
		"ideaId":  ideaID,
	}, token)
	require.Equal(t, http.StatusCreated, first.Code)
	firstID := decode(t, first)["id"].(string)

	second := doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content": "Second",
		"ideaId":  ideaID,
	}, token)
	require.Equal(t, http.StatusCreated, second.Code)

	rec := doJSON(t, engine, http.MethodDelete, "/api/comments/"+firstID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	// The deleted comment drops out of the listing; the other survives.
	rec = doJSON(t, engine, http.MethodGet, "/api/comments/idea/"+ideaID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Second", list[0]["content"])

	// Deleted comments can't be edited again.
	rec = doJSON(t, engine, http.MethodPut, "/api/comments/"+firstID, map[string]string{
		"content": "Resurrected",
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVoteToggle(t *testing.T) {
	engine := setupServer(t)
	authorToken, _ := registerUser(t, engine, "rachel")
	voterToken, _ := registerUser(t, engine, "steve")

	idea := createIdea(t, engine, authorToken, "Votable Idea", true)
	ideaID := idea["id"].(string)

	rec := doJSON(t, engine, http.MethodPost, "/api/votes/idea/"+ideaID, map[string]string{
		"type": "UPVOTE",
	}, voterToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	counts := func() map[string]interface{} {
		rec := doJSON(t, engine, http.MethodGet, "/api/votes/idea/"+ideaID, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		return decode(t, rec)
	}
	assert.Equal(t, float64(1), counts()["UPVOTE"])

	// A duplicate vote is absorbed, not doubled.
	rec = doJSON(t, engine, http.MethodPost, "/api/votes/idea/"+ideaID, map[string]string{
		"type": "UPVOTE",
	}, voterToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), counts()["UPVOTE"])

	// Distinct types coexist for the same user.
	rec = doJSON(t, engine, http.MethodPost, "/api/votes/idea/"+ideaID, map[string]string{
		"type": "WOULD_USE",
	}, voterToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/votes/idea/"+ideaID+"/user", nil, voterToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 2)

	// Removing restores the count; the type rides the query string.
	rec = doJSON(t, engine, http.MethodDelete, "/api/votes/idea/"+ideaID+"?type=UPVOTE", nil, voterToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), counts()["UPVOTE"])
	assert.Equal(t, float64(1), counts()["WOULD_USE"])

	rec = doJSON(t, engine, http.MethodPost, "/api/votes/idea/"+ideaID, map[string]string{
		"type": "SUPERVOTE",
	}, voterToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessages(t *testing.T) {
	engine := setupServer(t)
	aliceToken, aliceID := registerUser(t, engine, "tina")
	bobToken, bobID := registerUser(t, engine, "ursula")

	rec := doJSON(t, engine, http.MethodPost, "/api/messages", map[string]string{
		"receiverId": bobID,
		"content":    "Hello Bob",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	time.Sleep(5 * time.Millisecond)
	rec = doJSON(t, engine, http.MethodPost, "/api/messages", map[string]string{
		"receiverId": bobID,
		"content":    "Are you there?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Bob sees one conversation with two unread messages.
	rec = doJSON(t, engine, http.MethodGet, "/api/messages/conversations", nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	conversations := decodeList(t, rec)
	require.Len(t, conversations, 1)
	assert.Equal(t, float64(2), conversations[0]["unreadCount"])
	last := conversations[0]["lastMessage"].(map[string]interface{})
	assert.Equal(t, "Are you there?", last["content"])

	// History comes back oldest-first.
	rec = doJSON(t, engine, http.MethodGet, "/api/messages/user/"+aliceID, nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeList(t, rec)
	require.Len(t, history, 2)
	assert.Equal(t, "Hello Bob", history[0]["content"])
	assert.Equal(t, "Are you there?", history[1]["content"])

	rec = doJSON(t, engine, http.MethodPut, "/api/messages/read/"+aliceID, nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/messages/conversations", nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	conversations = decodeList(t, rec)
	assert.Equal(t, float64(0), conversations[0]["unreadCount"])

	// Self-messaging and missing fields are rejected.
	rec = doJSON(t, engine, http.MethodPost, "/api/messages", map[string]string{
		"receiverId": aliceID,
		"content":    "Note to self",
	}, aliceToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/messages", map[string]string{
		"content": "No receiver",
	}, aliceToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifications(t *testing.T) {
	engine := setupServer(t)
	authorToken, _ := registerUser(t, engine, "victor")
	commenterToken, _ := registerUser(t, engine, "wendy")

	idea := createIdea(t, engine, authorToken, "Notify Me", true)
	ideaID := idea["id"].(string)

	rec := doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content": "Interesting",
		"ideaId":  ideaID,
	}, commenterToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/votes/idea/"+ideaID, map[string]string{
		"type": "UPVOTE",
	}, commenterToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/notifications", nil, authorToken)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	notifications := body["notifications"].([]interface{})
	require.Len(t, notifications, 2)
	assert.Equal(t, float64(2), body["unreadCount"])

	first := notifications[0].(map[string]interface{})
	notificationID := first["id"].(string)
	assert.Equal(t, "wendy", first["actor"].(map[string]interface{})["username"])

	// Commenting on your own idea stays silent.
	rec = doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content": "My own note",
		"ideaId":  ideaID,
	}, authorToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/notifications/unread-count", nil, authorToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["count"])

	// Someone else's notification is a 404 for the caller.
	rec = doJSON(t, engine, http.MethodPut, "/api/notifications/"+notificationID+"/read", nil, commenterToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodPut, "/api/notifications/"+notificationID+"/read", nil, authorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/notifications/unread-count", nil, authorToken)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = doJSON(t, engine, http.MethodPut, "/api/notifications/read-all", nil, authorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/notifications/unread-count", nil, authorToken)
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestUserProfile(t *testing.T) {
	engine := setupServer(t)
	token, userID := registerUser(t, engine, "xavier")
	createIdea(t, engine, token, "Profile Idea", true)
	createIdea(t, engine, token, "Hidden Idea", false)

	rec := doJSON(t, engine, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	counts := me["_count"].(map[string]interface{})
	assert.Equal(t, float64(2), counts["ideas"])

	// Skills accept a comma-separated string or an array.
	rec = doJSON(t, engine, http.MethodPut, "/api/users/me", map[string]interface{}{
		"bio":       "Building things",
		"skills":    "go, sql ,distributed systems",
		"interests": []string{"fintech"},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "Building things", updated["bio"])
	assert.Equal(t, []interface{}{"go", "sql", "distributed systems"}, updated["skills"])
	assert.Equal(t, []interface{}{"fintech"}, updated["interests"])

	rec = doJSON(t, engine, http.MethodGet, "/api/users/xavier", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Building things", decode(t, rec)["bio"])

	rec = doJSON(t, engine, http.MethodGet, "/api/users/nosuchuser", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Anonymous viewers only see public ideas; the owner sees all.
	rec = doJSON(t, engine, http.MethodGet, "/api/users/"+userID+"/ideas", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/users/"+userID+"/ideas", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 2)
}

func TestScenarioIdeaLifecycle(t *testing.T) {
	engine := setupServer(t)
	founderToken, _ := registerUser(t, engine, "founder")
	investorToken, _ := registerUser(t, engine, "investor")

	idea := createIdea(t, engine, founderToken, "Startup Pitch", true)
	ideaID := idea["id"].(string)
	slug := idea["slug"].(string)

	rec := doJSON(t, engine, http.MethodPost, "/api/votes/idea/"+ideaID, map[string]string{
		"type": "INVEST_INTEREST",
	}, investorToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/comments", map[string]string{
		"content": "What's the business model?",
		"ideaId":  ideaID,
		"type":    "QUESTION",
	}, investorToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The detail view aggregates counts.
	rec = doJSON(t, engine, http.MethodGet, "/api/ideas/"+slug, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	assert.Equal(t, float64(1), detail["commentCount"])
	assert.Equal(t, float64(1), detail["voteCount"])

	// The founder was notified of both interactions.
	rec = doJSON(t, engine, http.MethodGet, "/api/notifications/unread-count", nil, founderToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["count"])
}
