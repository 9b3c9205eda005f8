package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/campsight/campsight/internal/availability"
)

const dateLayout = "2006-01-02"

// availabilityRequest is the query surface of GET /availability. Names repeat
// as campgroundName parameters; dates are calendar days.
type availabilityRequest struct {
	CampgroundNames []string `validate:"required,min=1,dive,required"`
	StartDate       string   `validate:"required"`
	EndDate         string   `validate:"required"`
	Format          string   `validate:"omitempty,oneof=json html"`
}

func bindAvailabilityRequest(r *http.Request) availabilityRequest {
	q := r.URL.Query()
	return availabilityRequest{
		CampgroundNames: q["campgroundName"],
		StartDate:       q.Get("startDate"),
		EndDate:         q.Get("endDate"),
		Format:          q.Get("format"),
	}
}

// wantsJSON decides the response format. An explicit format parameter wins;
// otherwise the Accept header picks, defaulting to HTML. The check core never
// sees any of this.
func wantsJSON(format string, r *http.Request) bool {
	if format != "" {
		return format == "json"
	}
	return render.GetAcceptedContentType(r) == render.ContentTypeJSON
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(
		slog.String("op", "web.availability"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := bindAvailabilityRequest(r)
	if err := s.validate.Struct(req); err != nil {
		log.Warn("invalid query", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, validationError(err.(validator.ValidationErrors)))
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		log.Warn("bad start date", slog.String("startDate", req.StartDate))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse("startDate must be a YYYY-MM-DD date"))
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		log.Warn("bad end date", slog.String("endDate", req.EndDate))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse("endDate must be a YYYY-MM-DD date"))
		return
	}

	report, err := s.checker.Check(r.Context(), req.CampgroundNames, start, end)
	if err != nil {
		var ire *availability.InvalidRangeError
		if errors.As(err, &ire) {
			log.Warn("invalid range", slog.Any("err", err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, errorResponse(err.Error()))
			return
		}
		log.Error("availability check failed", slog.Any("err", err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, errorResponse("availability check failed"))
		return
	}

	if wantsJSON(req.Format, r) {
		render.JSON(w, r, report)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "results.html", s.buildResultsView(req, report)); err != nil {
		log.Error("failed to execute results template", slog.Any("err", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := indexView{CSS: s.css, JS: s.js}
	for _, e := range s.roster.Entries() {
		view.Campgrounds = append(view.Campgrounds, campgroundLink{
			ID:   e.ID,
			Name: e.Name,
			URL:  s.links.CampgroundURL(e.ID),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		s.log.Error("failed to execute index template", slog.Any("err", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

type indexView struct {
	CSS         template.CSS
	JS          template.JS
	Campgrounds []campgroundLink
}

type campgroundLink struct {
	ID   string
	Name string
	URL  string
}

type resultsView struct {
	CSS       template.CSS
	StartDate string
	EndDate   string
	Results   []campgroundView
}

type campgroundView struct {
	Title     string
	URL       string
	Error     string
	Fully     []string
	Partially []string
}

// buildResultsView projects a report into the results page model. Link text
// always prefers the roster name for resolved entries; unresolved entries show
// the supplied name with no link.
func (s *Server) buildResultsView(req availabilityRequest, report *availability.Report) resultsView {
	view := resultsView{CSS: s.css, StartDate: req.StartDate, EndDate: req.EndDate}
	for _, key := range report.Keys() {
		entry := report.Entry(key)
		cv := campgroundView{}
		if name, ok := s.roster.NameFor(key); ok {
			cv.Title = name
			cv.URL = s.links.CampgroundURL(key)
		} else if entry.CampgroundName != "" {
			cv.Title = entry.CampgroundName
		} else {
			cv.Title = key
		}
		if entry.Err != nil {
			cv.Error = entry.Err.Error()
		} else {
			cv.Fully = entry.FullyAvailable
			cv.Partially = entry.PartiallyAvailable
		}
		view.Results = append(view.Results, cv)
	}
	return view
}
