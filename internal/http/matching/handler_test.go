package matching

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/matching"
)

func setup(t *testing.T) (http.Handler, *matching.MockRepository) {
	t.Helper()

	repo := matching.NewMockRepository(gomock.NewController(t))

	router := chi.NewRouter()
	router.Route("/api/methods", NewHandler(matching.NewService(repo)).Routes)

	return router, repo
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestHandler_Suggest(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		found       string
		wantMethod  string
		wantMatched bool
	}{
		{name: "mapped", raw: "GooglePay", found: "UPI", wantMethod: "UPI", wantMatched: true},
		{name: "unmapped passes through", raw: "Barter", found: "", wantMethod: "Barter", wantMatched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := setup(t)

			repo.EXPECT().FindMatch(gomock.Any(), tt.raw).Return(tt.found, nil)

			rec := serve(h, http.MethodGet, "/api/methods/suggest?raw="+tt.raw, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var env struct {
				Data suggestResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

			assert.Equal(t, tt.wantMethod, env.Data.Method)
			assert.Equal(t, tt.wantMatched, env.Data.Matched)
		})
	}
}

func TestHandler_Suggest_MissingRaw(t *testing.T) {
	h, _ := setup(t)

	rec := serve(h, http.MethodGet, "/api/methods/suggest", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Learn(t *testing.T) {
	h, repo := setup(t)

	repo.EXPECT().SaveMapping(gomock.Any(), matching.Mapping{RawPattern: "phonepe", Method: "UPI"}).Return(nil)

	rec := serve(h, http.MethodPost, "/api/methods", `{"raw_pattern":" PhonePe ","method":"UPI"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_Learn_Blank(t *testing.T) {
	h, _ := setup(t)

	rec := serve(h, http.MethodPost, "/api/methods", `{"raw_pattern":"phonepe","method":" "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "method is required")
}

func TestHandler_List(t *testing.T) {
	h, repo := setup(t)

	repo.EXPECT().ListMappings(gomock.Any()).Return([]matching.Mapping{{RawPattern: "gpay", Method: "UPI"}}, nil)

	rec := serve(h, http.MethodGet, "/api/methods", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []mappingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, []mappingResponse{{RawPattern: "gpay", Method: "UPI"}}, env.Data)
}
