package listing_api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ms-directory/internal/database/dbtest"
	"ms-directory/internal/flash"
	"ms-directory/internal/kafka"
	"ms-directory/internal/listings/db"
	"ms-directory/internal/listings/service"
	"ms-directory/internal/logger"
	"ms-directory/internal/utils"
	"ms-directory/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	svc     *service.ListingService
	flashes *flash.MemoryStore
	cookie  *http.Cookie
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	svc := service.NewListingService(&db.DB{Bun: dbtest.New(t)}, kafka.NopPublisher{}, logger.Discard())
	svc.Now = func() time.Time { return fixedNow }

	store := flash.NewMemoryStore()
	h := NewHandler(svc, renderer, store, logger.Discard())

	return &testServer{
		handler: h.NewRouter(),
		svc:     svc,
		flashes: store,
		cookie:  &http.Cookie{Name: flash.CookieName, Value: "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"},
	}
}

func (s *testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(s.cookie)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func venueValues(name string) url.Values {
	return url.Values{
		"name":    {name},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"phone":   {"123-123-1234"},
		"genres":  {"Jazz"},
	}
}

func artistValues(name string) url.Values {
	return url.Values{
		"name":   {name},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"phone":  {"326-123-5000"},
		"genres": {"Rock n Roll"},
	}
}

func TestHomeAndHealth(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fyyur")

	rec = s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestCreateVenueRedirectsWithFlash(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "Venue The Musical Hop was successfully listed!")

	// Flashes are shown once.
	rec = s.do(http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), "successfully listed")
}

func TestCreateVenueValidationIs422(t *testing.T) {
	s := setupServer(t)

	values := venueValues("The Musical Hop")
	values.Set("phone", "1234567")
	values.Set("state", "ZZ")

	rec := s.do(http.MethodPost, "/venues/create", values)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid phone number.")
	assert.Contains(t, body, "Invalid state choice.")
	assert.Contains(t, body, `value="The Musical Hop"`)

	n, err := s.svc.DB.CountVenues(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateVenueDuplicateIs409(t *testing.T) {
	s := setupServer(t)

	require.Equal(t, http.StatusSeeOther, s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop")).Code)
	rec := s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue The Musical Hop already exists.")
}

func TestVenuePages(t *testing.T) {
	s := setupServer(t)
	require.Equal(t, http.StatusSeeOther, s.do(http.MethodPost, "/venues/create", venueValues("The Mercury Room")).Code)

	rec := s.do(http.MethodGet, "/venues", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "San Francisco, CA")
	assert.Contains(t, rec.Body.String(), "The Mercury Room")

	rec = s.do(http.MethodGet, "/venues/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 Upcoming Shows")

	rec = s.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"ROOM"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Found 1 result")

	rec = s.do(http.MethodGet, "/venues/1/edit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="1015 Folsom Street"`)
}

func TestVenueNotFound(t *testing.T) {
	s := setupServer(t)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/venues/42", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/venues/42/edit", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/venues/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/venues/99999999999999999999", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/venues/42/edit", venueValues("Ghost")).Code)
}

func TestUpdateVenueRedirectsToDetail(t *testing.T) {
	s := setupServer(t)
	require.Equal(t, http.StatusSeeOther, s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop")).Code)

	rec := s.do(http.MethodPost, "/venues/1/edit", venueValues("The Musical Hop II"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/venues/1", nil)
	assert.Contains(t, rec.Body.String(), "The Musical Hop II")
	assert.Contains(t, rec.Body.String(), "successfully updated")
}

func TestDeleteVenueJSON(t *testing.T) {
	s := setupServer(t)
	require.Equal(t, http.StatusSeeOther, s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop")).Code)

	rec := s.do(http.MethodDelete, "/venues/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	rec = s.do(http.MethodDelete, "/venues/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestArtistFlow(t *testing.T) {
	s := setupServer(t)

	rec := s.do(http.MethodPost, "/artists/create", artistValues("Guns N Petals"))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/artists", nil)
	assert.Contains(t, rec.Body.String(), `href="/artists/1"`)

	rec = s.do(http.MethodPost, "/artists/search", url.Values{"search_term": {"petal"}})
	assert.Contains(t, rec.Body.String(), "Guns N Petals")

	rec = s.do(http.MethodGet, "/artists/1/edit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	edit := artistValues("Guns N Petals")
	edit.Set("seeking_venue", "y")
	edit.Set("seeking_description", "Looking for shows")
	rec = s.do(http.MethodPost, "/artists/1/edit", edit)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/artists/1", nil)
	assert.Contains(t, rec.Body.String(), "Currently seeking performance venues: Looking for shows")

	rec = s.do(http.MethodDelete, "/artists/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/artists/1", nil).Code)
}

func TestShowFlow(t *testing.T) {
	s := setupServer(t)
	require.Equal(t, http.StatusSeeOther, s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop")).Code)
	require.Equal(t, http.StatusSeeOther, s.do(http.MethodPost, "/artists/create", artistValues("Guns N Petals")).Code)

	rec := s.do(http.MethodGet, "/shows/create", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2030-06-01 12:00:00")

	show := url.Values{"artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"2030-07-01 20:00:00"}}
	rec = s.do(http.MethodPost, "/shows/create", show)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodPost, "/shows/create", show)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {"7"}, "venue_id": {"1"}, "start_time": {"2030-07-01 20:00:00"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "No artist with id 7.")

	rec = s.do(http.MethodGet, "/shows", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2030-07-01 20:00:00")
	assert.Contains(t, rec.Body.String(), "Guns N Petals")

	rec = s.do(http.MethodGet, "/venues/1", nil)
	assert.Contains(t, rec.Body.String(), "1 Upcoming Shows")
}

func TestMethodNotAllowed(t *testing.T) {
	s := setupServer(t)
	rec := s.do(http.MethodPut, "/venues/create", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecovererRendersServerError(t *testing.T) {
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	h := NewHandler(nil, renderer, flash.NewMemoryStore(), logger.Discard())

	boom := h.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	boom.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server Error")
}

func TestNewSessionGetsCookie(t *testing.T) {
	s := setupServer(t)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, flash.CookieName, cookies[0].Name)
}
