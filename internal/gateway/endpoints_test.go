package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goiam/console/internal/domain/model"
)

// recordingServer captures the last request and replies with the given envelope.
type recordingServer struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func newRecordingClient(t *testing.T, data string, rec *recordingServer) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		body, _ := io.ReadAll(r.Body)
		rec.body = body
		_, _ = w.Write([]byte(`{"success":true,"message":"","data":` + data + `}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestMe(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `{"setup":{"client_added":true,"client_id":"c-1"},"user":{"id":"u-1","email":"ops@example.com"}}`, rec)

	self, err := client.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "/me/v1/dashboard", rec.path)
	assert.Equal(t, "c-1", self.Setup.ClientID)
	require.NotNil(t, self.User)
	assert.Equal(t, "ops@example.com", self.User.Email)
}

func TestVerifyCode(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `{"access_token":"T"}`, rec)

	token, err := client.VerifyCode(context.Background(), "code 123")
	require.NoError(t, err)
	assert.Equal(t, "T", token)
	assert.Equal(t, "/auth/v1/verify", rec.path)
	assert.Equal(t, "code 123", rec.query.Get("code"), "code must be query-escaped and round-trip")
}

func TestListProjectsSearchAppliesToBothFields(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `[{"id":"p1","name":"Payments"}]`, rec)

	projects, err := client.ListProjects(context.Background(), "tok", "  pay ")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)
	assert.Equal(t, "pay", rec.query.Get("name"))
	assert.Equal(t, "pay", rec.query.Get("description"))
}

func TestListUsersPaging(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `{"users":[],"total":41,"skip":20,"limit":10}`, rec)

	page, err := client.ListUsers(context.Background(), Auth{Token: "t", ProjectID: "p"}, PageQuery{Search: "jo", Skip: 20, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, "/user/v1/", rec.path)
	assert.Equal(t, "jo", rec.query.Get("query"))
	assert.Equal(t, "20", rec.query.Get("skip"))
	assert.Equal(t, "10", rec.query.Get("limit"))
}

func TestSearchResourcesQueryShape(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `{"resources":[],"total":0,"skip":0,"limit":10}`, rec)

	_, err := client.SearchResources(context.Background(), PageQuery{Search: "read", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "/resource/v1/search", rec.path)
	// The search string fans out to all three filter fields.
	assert.Equal(t, "read", rec.query.Get("name"))
	assert.Equal(t, "read", rec.query.Get("description"))
	assert.Equal(t, "read", rec.query.Get("key"))
}

func TestUpdateRolePathAndBody(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `{"id":"r-1","name":"admin"}`, rec)

	role := &model.Role{ID: "r-1", Name: "admin"}
	updated, err := client.UpdateRole(context.Background(), Auth{Token: "t", ProjectID: "p"}, role)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/role/v1/r-1", rec.path)
	assert.Equal(t, "admin", updated.Name)

	var sent model.Role
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "r-1", sent.ID)
}

func TestTransferOwnershipPath(t *testing.T) {
	rec := &recordingServer{}
	client := newRecordingClient(t, `null`, rec)

	err := client.TransferOwnership(context.Background(), Auth{Token: "t", ProjectID: "p"}, "old-user", "new-user")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/user/v1/old-user/transfer-ownership/new-user", rec.path)
}
