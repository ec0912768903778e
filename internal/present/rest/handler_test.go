package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/hateoas-playground/internal/domain"
	"github.com/totegamma/hateoas-playground/internal/infra/cache"
	"github.com/totegamma/hateoas-playground/internal/infra/repository"
	"github.com/totegamma/hateoas-playground/internal/usecase"
)

var (
	aliceID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bobID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	admin, err := domain.NewGroup("admin")
	require.NoError(t, err)
	ops, err := domain.NewGroup("ops/eu west")
	require.NoError(t, err)

	alice, err := domain.NewUser(aliceID, "alice", "alice@example.com", "hash-a", []domain.Group{admin, ops})
	require.NoError(t, err)
	bob, err := domain.NewUser(bobID, "bob", "bob@example.com", "hash-b", []domain.Group{ops})
	require.NoError(t, err)

	repo := repository.NewFixtureRepository([]domain.User{alice, bob})
	c := cache.NewMemoryCache(time.Minute)

	h := NewHandler(
		usecase.NewUserUsecase(repo, c),
		usecase.NewGroupUsecase(repo, repo, c),
	)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func get(e *echo.Echo, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Links []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"_links"`
}

func TestHandleUserIndex(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/users")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.NotEmpty(t, res.Header().Get("ETag"))

	var env envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.Len(t, env.Links, 1)
	assert.Equal(t, "self", env.Links[0].Rel)
	assert.Equal(t, "/users", env.Links[0].Href)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, aliceID.String(), items[0]["id"])
	assert.Equal(t, []any{"admin", "ops/eu west"}, items[0]["groups"])
	assert.NotContains(t, items[0], "password")
	assert.NotContains(t, res.Body.String(), "hash-a")

	root := get(e, "/")
	assert.Equal(t, http.StatusOK, root.Code)
	assert.Equal(t, res.Body.String(), root.Body.String())
}

func TestHandleUser(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/users/"+bobID.String())
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t,
		`{"data":{"id":"`+bobID.String()+`","name":"bob","email":"bob@example.com","groups":["ops/eu west"],"_links":[`+
			`{"rel":"self","href":"/users/`+bobID.String()+`"},`+
			`{"rel":"profile","href":"/users/`+bobID.String()+`/profile"},`+
			`{"rel":"groups","href":"/users/`+bobID.String()+`/groups"}]}}`,
		res.Body.String())
}

func TestHandleUserErrors(t *testing.T) {
	e := newTestServer(t)

	nonCanonical := []string{
		"/users/urn:uuid:" + bobID.String(),
		"/users/%7B" + bobID.String() + "%7D",
		"/users/" + strings.ReplaceAll(bobID.String(), "-", ""),
		"/users/" + strings.ToUpper(bobID.String()) + "/profile",
	}
	for _, target := range append([]string{"/users/not-a-uuid", "/users/nope/profile", "/users/x/groups"}, nonCanonical...) {
		res := get(e, target)
		assert.Equal(t, http.StatusBadRequest, res.Code, target)
		assert.JSONEq(t, `{"error":"invalid user id"}`, res.Body.String())
	}

	res := get(e, "/users/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHandleUserProfile(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/users/"+aliceID.String()+"/profile")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t,
		`{"data":{"userId":"`+aliceID.String()+`","name":"alice","email":"alice@example.com","_links":[`+
			`{"rel":"self","href":"/users/`+aliceID.String()+`/profile"},`+
			`{"rel":"user","href":"/users/`+aliceID.String()+`"}]}}`,
		res.Body.String())
}

func TestHandleUserGroups(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/users/"+aliceID.String()+"/groups")
	require.Equal(t, http.StatusOK, res.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.Len(t, env.Links, 2)
	assert.Equal(t, "/users/"+aliceID.String()+"/groups", env.Links[0].Href)
	assert.Equal(t, "/users/"+aliceID.String(), env.Links[1].Href)
	assert.Contains(t, string(env.Data), `"href":"/groups/ops%2Feu%20west"`)
}

func TestHandleGroupByEscapedName(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/groups/ops%2Feu%20west")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t,
		`{"data":{"name":"ops/eu west","_links":[`+
			`{"rel":"self","href":"/groups/ops%2Feu%20west"},`+
			`{"rel":"users","href":"/groups/ops%2Feu%20west/users"}]}}`,
		res.Body.String())

	res = get(e, "/groups/missing")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHandleGroupUsers(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/groups/admin/users")
	require.Equal(t, http.StatusOK, res.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.Len(t, env.Links, 2)
	assert.Equal(t, "self", env.Links[0].Rel)
	assert.Equal(t, "/groups/admin/users", env.Links[0].Href)
	assert.Equal(t, "group", env.Links[1].Rel)
	assert.Equal(t, "/groups/admin", env.Links[1].Href)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0]["name"])

	res = get(e, "/groups/ops%2Feu%20west/users")
	require.Equal(t, http.StatusOK, res.Code)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestHandleGroupIndex(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/groups")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t,
		`{"data":[`+
			`{"name":"admin","_links":[{"rel":"self","href":"/groups/admin"},{"rel":"users","href":"/groups/admin/users"}]},`+
			`{"name":"ops/eu west","_links":[{"rel":"self","href":"/groups/ops%2Feu%20west"},{"rel":"users","href":"/groups/ops%2Feu%20west/users"}]}],`+
			`"_links":[{"rel":"self","href":"/groups"}]}`,
		res.Body.String())
}

func TestConditionalGet(t *testing.T) {
	e := newTestServer(t)

	first := get(e, "/users")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := get(e, "/users", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())
	assert.Equal(t, etag, second.Header().Get("ETag"))

	stale := get(e, "/users", "If-None-Match", `"0000000000000000"`)
	assert.Equal(t, http.StatusOK, stale.Code)
}

func TestHandleHealth(t *testing.T) {
	e := newTestServer(t)

	res := get(e, "/healthz")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}
