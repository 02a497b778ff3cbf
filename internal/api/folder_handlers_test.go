package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"markeep/internal/database"
	"markeep/internal/models"
)

func folderPath(id int64, suffix string) string {
	return "/folders/" + strconv.FormatInt(id, 10) + suffix
}

func folderNames(page models.Page[models.Folder]) []string {
	names := make([]string, 0, len(page.Content))
	for _, f := range page.Content {
		names = append(names, f.Name)
	}
	return names
}

func TestListFoldersHandler_Ranking(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, uniqueEmail("rank"), "password123")
	marker := fmt.Sprintf("zq%d", time.Now().UnixNano())

	a := env.createFolder(t, owner.AccessToken, marker+" a")
	b := env.createFolder(t, owner.AccessToken, marker+" b")
	c := env.createFolder(t, owner.AccessToken, "untitled", marker+"-tag")
	d := env.createFolder(t, owner.AccessToken, marker+" d")
	setPinCount(t, a, 0)
	setPinCount(t, b, 2)
	setPinCount(t, c, 1)
	setPinCount(t, d, 2)

	rr := env.do(t, http.MethodGet, "/folders?keywords="+marker, nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	page := decode[models.Page[models.Folder]](t, rr)
	require.Equal(t, []string{marker + " b", marker + " d", "untitled", marker + " a"}, folderNames(page))
	require.EqualValues(t, 4, page.TotalElements)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, models.DefaultPageSize, page.PageSize)

	// Tags come back with each folder.
	require.Len(t, page.Content[2].Tags, 1)
	require.Equal(t, marker+"-tag", page.Content[2].Tags[0].Name)

	rr = env.do(t, http.MethodGet, "/folders?page=1&size=3&keywords="+strings.ToUpper(marker), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page = decode[models.Page[models.Folder]](t, rr)
	require.Equal(t, []string{marker + " a"}, folderNames(page))
	require.EqualValues(t, 4, page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 1, page.PageNumber)

	rr = env.do(t, http.MethodGet, "/folders?keywords=nomatch-"+marker+",,", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page = decode[models.Page[models.Folder]](t, rr)
	require.NotNil(t, page.Content)
	require.Empty(t, page.Content)
	require.Zero(t, page.TotalPages)
}

func TestListFoldersHandler_NoKeywordsListsEverything(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, uniqueEmail("all"), "password123")
	env.createFolder(t, owner.AccessToken, "anything")

	rr := env.do(t, http.MethodGet, "/folders?size=100", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[models.Page[models.Folder]](t, rr)
	require.GreaterOrEqual(t, page.TotalElements, int64(1))

	for i := 1; i < len(page.Content); i++ {
		prev, cur := page.Content[i-1], page.Content[i]
		require.True(t, prev.PinCount > cur.PinCount || (prev.PinCount == cur.PinCount && prev.ID < cur.ID))
	}
}

func TestListFoldersHandler_InvalidPaging(t *testing.T) {
	env := newTestEnv(t)

	tooMany := make([]string, models.MaxKeywords+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("k%d", i)
	}

	for _, query := range []string{
		"page=-1",
		"size=0",
		"size=101",
		"page=abc",
		"size=1.5",
		"page=92233720368547758&size=100",
		"keywords=" + strings.Join(tooMany, ","),
	} {
		rr := env.do(t, http.MethodGet, "/folders?"+query, nil, "")
		requireError(t, rr, http.StatusBadRequest, "INVALID_ARGUMENT")
	}
}

func TestCreateAndGetFolder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, uniqueEmail("create"), "password123")

	rr := env.do(t, http.MethodPost, "/folders", CreateFolderRequest{Name: "Trips"}, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")

	rr = env.do(t, http.MethodPost, "/folders", CreateFolderRequest{Name: ""}, owner.AccessToken)
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")

	rr = env.do(t, http.MethodPost, "/folders",
		CreateFolderRequest{Name: "  Trips  ", Tags: []string{"travel", "Travel", " 2024 "}}, owner.AccessToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[models.Folder](t, rr)
	require.Equal(t, "Trips", created.Name)
	require.Equal(t, owner.ID, created.UserID)
	require.Zero(t, created.PinCount)
	require.Len(t, created.Tags, 2)

	rr = env.do(t, http.MethodPost, folderPath(created.ID, "/sites"), AddSiteRequest{
		URL: "https://example.com/trip", Title: "Trip", Comment: "nice",
	}, owner.AccessToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodPost, folderPath(created.ID, "/sites"), AddSiteRequest{URL: "not a url"}, owner.AccessToken)
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")

	rr = env.do(t, http.MethodGet, folderPath(created.ID, ""), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[FolderDetailResponse](t, rr)
	require.Equal(t, created.ID, detail.ID)
	require.Len(t, detail.Tags, 2)
	require.Len(t, detail.Sites, 1)
	require.Equal(t, "Trip", detail.Sites[0].Title)

	rr = env.do(t, http.MethodGet, folderPath(created.ID, "/sites"), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, decode[[]models.Site](t, rr), 1)

	rr = env.do(t, http.MethodGet, "/folders/999999999", nil, "")
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")

	rr = env.do(t, http.MethodGet, "/folders/999999999/sites", nil, "")
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")

	rr = env.do(t, http.MethodGet, "/folders/abc", nil, "")
	requireError(t, rr, http.StatusBadRequest, "INVALID_ARGUMENT")
}

func TestFolderOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, uniqueEmail("owner"), "password123")
	other := env.signUp(t, uniqueEmail("other"), "password123")
	folderID := env.createFolder(t, owner.AccessToken, "mine", "keep")

	rr := env.do(t, http.MethodPost, folderPath(folderID, "/tags"), AddTagRequest{Name: "theirs"}, other.AccessToken)
	requireError(t, rr, http.StatusForbidden, "FORBIDDEN")

	rr = env.do(t, http.MethodPost, folderPath(folderID, "/sites"), AddSiteRequest{URL: "https://example.com"}, other.AccessToken)
	requireError(t, rr, http.StatusForbidden, "FORBIDDEN")

	rr = env.do(t, http.MethodDelete, folderPath(folderID, ""), nil, other.AccessToken)
	requireError(t, rr, http.StatusForbidden, "FORBIDDEN")

	rr = env.do(t, http.MethodPost, folderPath(folderID, "/tags"), AddTagRequest{Name: "KEEP"}, owner.AccessToken)
	requireError(t, rr, http.StatusBadRequest, "ALREADY_EXISTS")

	rr = env.do(t, http.MethodPost, folderPath(folderID, "/tags"), AddTagRequest{Name: "more"}, owner.AccessToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Equal(t, "more", decode[models.Tag](t, rr).Name)

	rr = env.do(t, http.MethodDelete, folderPath(folderID, ""), nil, owner.AccessToken)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodDelete, folderPath(folderID, ""), nil, owner.AccessToken)
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")

	rr = env.do(t, http.MethodGet, folderPath(folderID, ""), nil, "")
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")
}

func TestPinFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, uniqueEmail("pinowner"), "password123")
	fan := env.signUp(t, uniqueEmail("fan"), "password123")
	folderID := env.createFolder(t, owner.AccessToken, "pinnable")

	rr := env.do(t, http.MethodPost, folderPath(folderID, "/pin"), nil, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")

	rr = env.do(t, http.MethodPost, folderPath(folderID, "/pin"), nil, fan.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, PinResponse{FolderID: folderID, PinCount: 1, Pinned: true}, decode[PinResponse](t, rr))

	rr = env.do(t, http.MethodPost, folderPath(folderID, "/pin"), nil, fan.AccessToken)
	requireError(t, rr, http.StatusBadRequest, "ALREADY_EXISTS")

	rr = env.do(t, http.MethodGet, folderPath(folderID, "/pin"), nil, fan.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[PinResponse](t, rr).Pinned)

	rr = env.do(t, http.MethodGet, folderPath(folderID, "/pin"), nil, owner.AccessToken)
	require.False(t, decode[PinResponse](t, rr).Pinned)

	rr = env.do(t, http.MethodGet, "/user/events", nil, owner.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code)
	events := decode[[]database.Event](t, rr)
	require.Len(t, events, 1)
	require.Equal(t, database.EventFolderPinned, events[0].EventType)

	var payload map[string]int64
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	require.Equal(t, folderID, payload["folderId"])
	require.Equal(t, fan.ID, payload["pinnedBy"])

	rr = env.do(t, http.MethodDelete, folderPath(folderID, "/pin"), nil, fan.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, PinResponse{FolderID: folderID, PinCount: 0, Pinned: false}, decode[PinResponse](t, rr))

	rr = env.do(t, http.MethodDelete, folderPath(folderID, "/pin"), nil, fan.AccessToken)
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")

	rr = env.do(t, http.MethodGet, "/user/events?since="+strconv.FormatInt(events[0].ID, 10), nil, owner.AccessToken)
	require.Len(t, decode[[]database.Event](t, rr), 1)

	rr = env.do(t, http.MethodGet, "/user/events?since=x", nil, owner.AccessToken)
	requireError(t, rr, http.StatusBadRequest, "INVALID_ARGUMENT")

	rr = env.do(t, http.MethodPost, "/folders/999999999/pin", nil, fan.AccessToken)
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")
}

func TestPinPushesEventOverWebsocket(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, uniqueEmail("wsowner"), "password123")
	fan := env.signUp(t, uniqueEmail("wsfan"), "password123")
	folderID := env.createFolder(t, owner.AccessToken, "watched")

	srv := httptest.NewServer(env.handler)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + owner.AccessToken
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return env.hub.ConnectionCount(owner.ID) == 1 }, 2*time.Second, 10*time.Millisecond)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+folderPath(folderID, "/pin"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+fan.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event database.Event
	require.NoError(t, json.Unmarshal(msg, &event))
	require.Equal(t, database.EventFolderPinned, event.EventType)
	require.NotZero(t, event.ID)
}

func TestServeWsHandler_RequiresValidToken(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/ws", nil, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")

	rr = env.do(t, http.MethodGet, "/ws?token=garbage", nil, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
}
