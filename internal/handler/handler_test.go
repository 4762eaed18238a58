package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/artifacts"
	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
	"github.com/kadivar3110/movie-recommender-system/internal/sentiment"
	"github.com/kadivar3110/movie-recommender-system/internal/service"
	"github.com/kadivar3110/movie-recommender-system/internal/similarity"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	recs []models.Recommendation
	err  error
}

func (f *fakeHistory) Recent(_ context.Context, title string, limit int64) ([]models.Recommendation, error) {
	return f.recs, f.err
}

func testBundle(t *testing.T, withIndex bool) *artifacts.Bundle {
	t.Helper()
	b := &artifacts.Bundle{
		Catalog: catalog.New([]models.Movie{
			{ID: 1, Title: "Avatar"},
			{ID: 2, Title: "Titanic"},
			{ID: 3, Title: "Face/Off"},
			{ID: 4, Title: "Aliens"},
		}),
	}
	if withIndex {
		ix, err := similarity.FromRows([][]float64{
			{1, 0.2, 0.3, 0.9},
			{0.2, 1, 0.1, 0.4},
			{0.3, 0.1, 1, 0.5},
			{0.9, 0.4, 0.5, 1},
		})
		require.NoError(t, err)
		b.Index = ix
	}
	v := &sentiment.CountVectorizer{Vocabulary: map[string]int{"good": 0, "bad": 1}, NgramMin: 1, NgramMax: 1}
	m := &sentiment.LinearModel{Coef: []float64{1, -1}, Classes: [2]int{0, 1}}
	b.Sentiment = sentiment.NewPipeline(v, m)
	return b
}

type routerOpts struct {
	noIndex  bool
	secret   string
	limit    int
	history  HistoryReader
	defaultK int
}

func newTestRouter(t *testing.T, o routerOpts) http.Handler {
	t.Helper()
	b := testBundle(t, !o.noIndex)
	rec := NewRecommendHandler(service.NewRecommendService(b.Catalog, b.Index, nil), nil, 60, o.defaultK, nil)
	if o.history != nil {
		rec.WithHistory(o.history)
	}
	return NewRouter(RouterConfig{
		Bundle:    b,
		Movies:    NewMovieHandler(service.NewMovieService(b.Catalog)),
		Recommend: rec,
		Reviews:   NewReviewHandler(service.NewReviewService(b.Sentiment, nil), o.limit, nil),
		JWTSecret: o.secret,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndStatus(t *testing.T) {
	h := newTestRouter(t, routerOpts{noIndex: true})

	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var st artifacts.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.Equal(t, artifacts.Status{Catalog: true, Similarity: false, Sentiment: true, Movies: 4}, st)
}

func TestMoviesSearch(t *testing.T) {
	h := newTestRouter(t, routerOpts{})

	rr := do(t, h, http.MethodGet, "/movies?q=a&limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got []models.Movie
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, []models.Movie{{ID: 1, Title: "Avatar"}, {ID: 2, Title: "Titanic"}}, got)
}

func TestGetRecommendations(t *testing.T) {
	h := newTestRouter(t, routerOpts{defaultK: 2})

	rr := do(t, h, http.MethodGet, "/movies/Avatar/recommendations", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var res models.RecommendationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Avatar", res.Query.Title)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Aliens", res.Items[0].Movie.Title)
	assert.Equal(t, 0.9, res.Items[0].Score)
	assert.Equal(t, "Face/Off", res.Items[1].Movie.Title)
}

func TestGetRecommendationsStatusCodes(t *testing.T) {
	testCases := []struct {
		name   string
		opts   routerOpts
		target string
		want   int
		items  int
	}{
		{"ok k", routerOpts{}, "/movies/Avatar/recommendations?k=1", http.StatusOK, 1},
		{"k recortado a 1", routerOpts{}, "/movies/Avatar/recommendations?k=0", http.StatusOK, 1},
		{"k mayor que el catálogo", routerOpts{}, "/movies/Avatar/recommendations?k=500", http.StatusOK, 3},
		{"título escapado", routerOpts{}, "/movies/Face%2FOff/recommendations?k=1", http.StatusOK, 1},
		{"título con espacios", routerOpts{}, "/movies/Nope%20Nope/recommendations", http.StatusNotFound, 0},
		{"no existe", routerOpts{}, "/movies/Nope/recommendations", http.StatusNotFound, 0},
		{"sin índice", routerOpts{noIndex: true}, "/movies/Avatar/recommendations", http.StatusServiceUnavailable, 0},
		{"k inválido", routerOpts{}, "/movies/Avatar/recommendations?k=abc", http.StatusBadRequest, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, newTestRouter(t, tc.opts), http.MethodGet, tc.target, "")
			require.Equal(t, tc.want, rr.Code, rr.Body.String())
			if tc.want == http.StatusOK {
				var res models.RecommendationResult
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
				assert.Len(t, res.Items, tc.items)
			}
		})
	}
}

func TestGetHistory(t *testing.T) {
	rr := do(t, newTestRouter(t, routerOpts{}), http.MethodGet, "/recommendations/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	hist := &fakeHistory{recs: []models.Recommendation{{ID: "x", K: 5, Query: models.Movie{ID: 1, Title: "Avatar"}}}}
	rr = do(t, newTestRouter(t, routerOpts{history: hist}), http.MethodGet, "/recommendations/history?limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.Recommendation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)

	hist.err = errors.New("mongo down")
	rr = do(t, newTestRouter(t, routerOpts{history: hist}), http.MethodGet, "/recommendations/history", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAnalyzeReviews(t *testing.T) {
	h := newTestRouter(t, routerOpts{limit: 3})

	body := `{"reviews": [
		{"author": "ana", "content": "Good good"},
		{"content": "bad"},
		{"author": "cy", "content": ""},
		{"author": "di", "content": "good"}
	]}`
	rr := do(t, h, http.MethodPost, "/reviews/analyze", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got models.ReviewAnalysis
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	// solo las primeras 3
	require.Len(t, got.Records, 3)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, "ana", got.Records[0].Author)
	assert.Equal(t, "Anonymous", got.Records[1].Author)
	require.NotNil(t, got.Records[0].Sentiment)
	assert.Equal(t, 1, *got.Records[0].Sentiment)
	require.NotNil(t, got.Records[1].Sentiment)
	assert.Equal(t, 0, *got.Records[1].Sentiment)
	assert.Nil(t, got.Records[2].Sentiment)
	assert.Equal(t, 1, got.Positive)
	assert.Equal(t, 1, got.Negative)
}

func TestAnalyzeReviewsBadRequest(t *testing.T) {
	h := newTestRouter(t, routerOpts{})

	testCases := []struct {
		name string
		body string
	}{
		{"json roto", `{"reviews": [`},
		{"sin reviews", `{}`},
		{"contenido muy largo", `{"reviews": [{"content": "` + strings.Repeat("a", 100001) + `"}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/reviews/analyze", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	rr := do(t, h, http.MethodPost, "/reviews/analyze", `{"reviews": []}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAnalyzeReviewsWebSocket(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, routerOpts{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/reviews/analyze"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	req := AnalyzeRequest{Reviews: []models.ReviewInput{
		{Author: "a", Content: "bad movie"},
		{Author: "b", Content: "good"},
	}}
	require.NoError(t, conn.WriteJSON(req))

	for i := 0; i < 2; i++ {
		var msg wsReviewMsg
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "review", msg.Type)
		assert.Equal(t, i, msg.Index)
		assert.Equal(t, req.Reviews[i].Author, msg.Record.Author)
		require.NotNil(t, msg.Record.Sentiment)
		assert.Equal(t, i, *msg.Record.Sentiment)
	}

	var sum wsSummaryMsg
	require.NoError(t, conn.ReadJSON(&sum))
	assert.Equal(t, wsSummaryMsg{Type: "summary", Total: 2, Positive: 1, Negative: 1}, sum)
}

func TestAnalyzeReviewsWebSocketInvalid(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, routerOpts{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/reviews/analyze"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{}`)))

	var msg wsErrorMsg
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
}

func signed(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTAuth(t *testing.T) {
	const secret = "s3cret"
	h := newTestRouter(t, routerOpts{secret: secret})
	exp := time.Now().Add(time.Hour).Unix()

	testCases := []struct {
		name  string
		token string
		want  int
	}{
		{"sin header", "", http.StatusUnauthorized},
		{"token válido", signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "u1", "exp": exp}), http.StatusOK},
		{"otro secreto", signed(t, jwt.SigningMethodHS256, "otro", jwt.MapClaims{"sub": "u1", "exp": exp}), http.StatusUnauthorized},
		{"otro algoritmo", signed(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{"sub": "u1", "exp": exp}), http.StatusUnauthorized},
		{"vencido", signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}

	// health no pide token
	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSubjectFromContext(t *testing.T) {
	var got string
	mw := JWTAuth("k")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SubjectFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.SigningMethodHS256, "k", jwt.MapClaims{"sub": "user-7"}))
	mw.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "user-7", got)

	assert.Empty(t, SubjectFromContext(context.Background()))
}
