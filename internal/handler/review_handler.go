package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/models"
	"github.com/kadivar3110/movie-recommender-system/internal/service"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	DefaultReviewLimit = 20
	anonymousAuthor    = "Anonymous"
	maxBodyBytes       = 4 << 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AnalyzeRequest es el cuerpo de POST /reviews/analyze y del primer
// mensaje del WebSocket.
type AnalyzeRequest struct {
	Reviews []models.ReviewInput `json:"reviews" validate:"required,dive"`
}

type ReviewHandler struct {
	svc   *service.ReviewService
	limit int
	log   *zap.Logger
}

func NewReviewHandler(s *service.ReviewService, limit int, log *zap.Logger) *ReviewHandler {
	if limit <= 0 {
		limit = DefaultReviewLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewHandler{svc: s, limit: limit, log: log.Named("http")}
}

// prepare recorta a las primeras `limit` reseñas y completa el autor.
func (h *ReviewHandler) prepare(req *AnalyzeRequest) ([]models.ReviewInput, error) {
	reviews := req.Reviews
	if len(reviews) > h.limit {
		reviews = reviews[:h.limit]
	}
	req.Reviews = reviews
	if err := validate.Struct(req); err != nil {
		return nil, validationMessage(err)
	}

	out := make([]models.ReviewInput, len(reviews))
	for i, r := range reviews {
		if r.Author == "" {
			r.Author = anonymousAuthor
		}
		out[i] = r
	}
	return out, nil
}

func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New("campo inválido: " + verrs[0].Namespace() + " (" + verrs[0].Tag() + ")")
	}
	return err
}

// @Summary Sentimiento de un lote de reseñas
// @Tags reviews
// @Accept json
// @Produce json
// @Param body body AnalyzeRequest true "reseñas (se procesan como mucho 20)"
// @Success 200 {object} models.ReviewAnalysis
// @Failure 400 {object} errorBody
// @Security BearerAuth
// @Router /reviews/analyze [post]
func (h *ReviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		badRequest(w, "JSON inválido")
		return
	}

	reviews, err := h.prepare(&req)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Analyze(reviews))
}

type wsReviewMsg struct {
	Type   string              `json:"type"`
	Index  int                 `json:"index"`
	Record models.ReviewRecord `json:"record"`
}

type wsSummaryMsg struct {
	Type     string `json:"type"`
	Total    int    `json:"total"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

type wsErrorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// @Summary Sentimiento de reseñas en tiempo real (WebSocket)
// @Description El cliente manda el mismo cuerpo que POST /reviews/analyze; el servidor
// @Description responde un mensaje "review" por reseña y al final un "summary".
// @Tags reviews
// @Success 101
// @Security BearerAuth
// @Router /ws/reviews/analyze [get]
func (h *ReviewHandler) AnalyzeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var req AnalyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(wsErrorMsg{Type: "error", Error: "JSON inválido"})
		return
	}

	reviews, err := h.prepare(&req)
	if err != nil {
		_ = conn.WriteJSON(wsErrorMsg{Type: "error", Error: err.Error()})
		return
	}

	var writeErr error
	res := h.svc.AnalyzeStream(reviews, func(i int, rec models.ReviewRecord) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(wsReviewMsg{Type: "review", Index: i, Record: rec})
	})
	if writeErr != nil {
		h.log.Debug("cliente WS desconectado", zap.Error(writeErr))
		return
	}

	_ = conn.WriteJSON(wsSummaryMsg{
		Type:     "summary",
		Total:    res.Total,
		Positive: res.Positive,
		Negative: res.Negative,
	})
}
