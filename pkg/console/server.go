package console

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/console/templates"
	"github.com/farmsight-ag/farmsight/pkg/detail"
	"github.com/farmsight-ag/farmsight/pkg/formflow"
	"github.com/farmsight-ag/farmsight/pkg/gateway"
)

// Server renders the management console. It holds no state of its own; every
// page round-trips through the resource gateway.
type Server struct {
	gw     *gateway.Client
	agg    *detail.Aggregator
	tmpl   *template.Template
	logger *zap.Logger

	farmKind  formflow.Kind
	fieldKind formflow.Kind
	cycleKind formflow.Kind
}

// NewServer creates a console server over the given gateway client.
func NewServer(gw *gateway.Client, logger *zap.Logger) *Server {
	return &Server{
		gw:        gw,
		agg:       detail.NewAggregator(gw, logger),
		tmpl:      template.Must(template.ParseFS(templates.FS, "*.html")),
		logger:    logger,
		farmKind:  formflow.FarmKind(),
		fieldKind: formflow.FieldKind(gw),
		cycleKind: formflow.CropCycleKind(gw),
	}
}

// RegisterRoutes registers every console page on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/farms", http.StatusFound)
	})
	mux.HandleFunc("GET /static/console.css", s.stylesheet)

	mux.HandleFunc("GET /farms", s.farmsList)
	mux.HandleFunc("GET /farms/new", s.farmForm)
	mux.HandleFunc("POST /farms/new", s.farmForm)
	mux.HandleFunc("GET /farms/{farmID}", s.farmDetail)
	mux.HandleFunc("GET /farms/{farmID}/edit", s.farmEditForm)
	mux.HandleFunc("POST /farms/{farmID}/edit", s.farmEditForm)
	mux.HandleFunc("GET /farms/{farmID}/fields/new", s.fieldForm)
	mux.HandleFunc("POST /farms/{farmID}/fields/new", s.fieldForm)

	mux.HandleFunc("GET /fields/new", s.fieldForm)
	mux.HandleFunc("POST /fields/new", s.fieldForm)
	mux.HandleFunc("GET /fields/{fieldID}", s.fieldDetail)
	mux.HandleFunc("GET /fields/{fieldID}/edit", s.fieldEditForm)
	mux.HandleFunc("POST /fields/{fieldID}/edit", s.fieldEditForm)
	mux.HandleFunc("GET /fields/{fieldID}/crop-cycles/new", s.cycleForm)
	mux.HandleFunc("POST /fields/{fieldID}/crop-cycles/new", s.cycleForm)

	mux.HandleFunc("GET /crop-cycles/new", s.cycleForm)
	mux.HandleFunc("POST /crop-cycles/new", s.cycleForm)
	mux.HandleFunc("GET /crop-cycles/{cycleID}", s.cycleDetail)
	mux.HandleFunc("GET /crop-cycles/{cycleID}/edit", s.cycleEditForm)
	mux.HandleFunc("POST /crop-cycles/{cycleID}/edit", s.cycleEditForm)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Failed to render template",
			zap.String("template", name),
			zap.Error(err))
	}
}

// renderLoadError maps a failed primary fetch onto a terminal error page. A
// missing entity and an unreachable backend are the only two shapes.
func (s *Server) renderLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		s.render(w, http.StatusNotFound, "error.html", errorView{
			Title:   "Not Found",
			Message: "The requested resource does not exist.",
		})
		return
	}
	s.logger.Error("Page load failed", zap.Error(err))
	s.render(w, http.StatusBadGateway, "error.html", errorView{
		Title:   "Backend Unavailable",
		Message: "The resource backend could not be reached. Nothing was changed.",
	})
}

type errorView struct {
	Title   string
	Message string
}

// pathID parses one positive integer path value. Anything else renders the
// not-found page.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.render(w, http.StatusNotFound, "error.html", errorView{
			Title:   "Not Found",
			Message: "The requested resource does not exist.",
		})
		return 0, false
	}
	return id, true
}

func (s *Server) farmsList(w http.ResponseWriter, r *http.Request) {
	farms, err := s.gw.ListFarms(r.Context())
	if err != nil {
		s.renderLoadError(w, err)
		return
	}
	s.render(w, http.StatusOK, "farms.html", struct {
		Farms any
	}{Farms: farms})
}

func (s *Server) farmDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "farmID")
	if !ok {
		return
	}
	farm, err := s.gw.GetFarm(r.Context(), id)
	if err != nil {
		s.renderLoadError(w, err)
		return
	}
	s.render(w, http.StatusOK, "farm_detail.html", struct {
		Farm any
	}{Farm: farm})
}

// fieldDetail renders the field page: field attributes, its crop cycles, and
// the current-prediction section when one exists.
func (s *Server) fieldDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "fieldID")
	if !ok {
		return
	}
	view := detail.NewView(s.agg)
	view.LoadField(r.Context(), id)
	if view.State() == detail.ViewFailed {
		s.renderLoadError(w, view.Result().Err)
		return
	}
	res := view.Result()
	s.render(w, http.StatusOK, "field_detail.html", struct {
		Field      any
		Prediction detail.PredictionSection
	}{Field: res.Field, Prediction: res.Prediction})
}

func (s *Server) cycleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "cycleID")
	if !ok {
		return
	}
	view := detail.NewView(s.agg)
	view.LoadCropCycle(r.Context(), id)
	if view.State() == detail.ViewFailed {
		s.renderLoadError(w, view.Result().Err)
		return
	}
	res := view.Result()
	s.render(w, http.StatusOK, "crop_cycle_detail.html", struct {
		CropCycle  any
		Prediction detail.PredictionSection
	}{CropCycle: res.CropCycle, Prediction: res.Prediction})
}

const stylesheet = `body{font-family:system-ui,sans-serif;margin:0;color:#222}
header{background:#2d5a27;color:#fff;padding:0.5rem 1.5rem;display:flex;align-items:baseline;gap:2rem}
header h1{font-size:1.2rem;margin:0.3rem 0}
header a{color:#cde8c9;text-decoration:none}
main{max-width:60rem;margin:1rem auto;padding:0 1.5rem}
table{border-collapse:collapse;width:100%}
th,td{text-align:left;padding:0.4rem 0.6rem;border-bottom:1px solid #ddd}
.button{display:inline-block;background:#2d5a27;color:#fff;padding:0.3rem 0.8rem;border-radius:3px;text-decoration:none}
.empty{color:#777;font-style:italic}
.error{background:#fbe3e4;border:1px solid #c0392b;padding:0.6rem;border-radius:3px}
.notice{background:#fff6d8;border:1px solid #c9a227;padding:0.6rem;border-radius:3px}
.status{padding:0.1rem 0.5rem;border-radius:8px;font-size:0.85em}
.status-Active{background:#def3d6;color:#2d5a27}
.status-Completed{background:#e4e4e4;color:#555}
.form-row{margin:0.8rem 0;display:flex;flex-direction:column;max-width:26rem}
.form-row label{font-weight:600;margin-bottom:0.2rem}
.form-row input,.form-row select,.form-row textarea{padding:0.35rem;border:1px solid #bbb;border-radius:3px}
.locked{color:#555}
`

func (s *Server) stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(stylesheet))
}
