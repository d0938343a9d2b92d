package listing_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ms-directory/internal/flash"
	"ms-directory/internal/listings/service"
	"ms-directory/internal/logger"
	"ms-directory/internal/models"
	"ms-directory/internal/sse"
	"ms-directory/internal/utils"
	"ms-directory/internal/web"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service  *service.ListingService
	Renderer *web.Renderer
	Flash    flash.Store
	Logger   *logger.Logger
	// Events feeds the live listing stream. Nil disables /events.
	Events *sse.ListingEventEmitter
}

func NewHandler(svc *service.ListingService, renderer *web.Renderer, store flash.Store, log *logger.Logger) *Handler {
	return &Handler{
		Service:  svc,
		Renderer: renderer,
		Flash:    store,
		Logger:   log,
	}
}

// RegisterRoutes mounts every listing page on r. Ids must be numeric, so
// anything else falls through to the not-found page.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.errorPage(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	r.Get("/", h.Home)
	r.Get("/healthz", h.Health)
	if h.Events != nil {
		r.Get("/events", h.ListingEvents)
	}

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Get("/create", h.NewVenueForm)
		r.Post("/create", h.CreateVenue)
		r.Get("/{id:[0-9]+}", h.ShowVenue)
		r.Get("/{id:[0-9]+}/edit", h.EditVenueForm)
		r.Post("/{id:[0-9]+}/edit", h.UpdateVenue)
		r.Delete("/{id:[0-9]+}", h.DeleteVenue)
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Get("/create", h.NewArtistForm)
		r.Post("/create", h.CreateArtist)
		r.Get("/{id:[0-9]+}", h.ShowArtist)
		r.Get("/{id:[0-9]+}/edit", h.EditArtistForm)
		r.Post("/{id:[0-9]+}/edit", h.UpdateArtist)
		r.Delete("/{id:[0-9]+}", h.DeleteArtist)
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Get("/create", h.NewShowForm)
		r.Post("/create", h.CreateShow)
	})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", web.PageData{})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Ping(r.Context()); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Health: storage ping failed: %v", err))
		h.writeJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse("unhealthy", "storage unavailable"))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("ok", nil))
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusNotFound, "Not Found", "The page you are looking for does not exist.")
}

// render pops the session's pending flashes in front of any passed in.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data web.PageData) {
	if sid := flash.SessionID(r.Context()); sid != "" && h.Flash != nil {
		pending, err := h.Flash.Pop(r.Context(), sid)
		if err != nil {
			h.Logger.Warn("FLASH", fmt.Sprintf("Failed to read flashes: %v", err))
		}
		data.Flashes = append(pending, data.Flashes...)
	}

	if err := h.Renderer.Render(w, status, page, data); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Render %s failed: %v", page, err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handler) errorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	h.render(w, r, status, "errors", web.PageData{Title: title, Data: message})
}

// flashAndRedirect stores msg for the next page and sends a 303.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, to, msg string) {
	if sid := flash.SessionID(r.Context()); sid != "" && h.Flash != nil {
		if err := h.Flash.Add(r.Context(), sid, msg); err != nil {
			h.Logger.Warn("FLASH", fmt.Sprintf("Failed to store flash: %v", err))
		}
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// submitFailed maps a mutation error to a response. Validation failures
// redisplay the form with every message.
func (h *Handler) submitFailed(w http.ResponseWriter, r *http.Request, err error, formPage string, data web.PageData, label string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		data.Errors = ve.Messages()
		h.render(w, r, http.StatusUnprocessableEntity, formPage, data)
	case errors.Is(err, models.ErrDuplicate):
		h.render(w, r, http.StatusConflict, "home", web.PageData{
			Flashes: []string{fmt.Sprintf("%s already exists.", label)},
		})
	case errors.Is(err, models.ErrNotFound):
		h.NotFound(w, r)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
		h.render(w, r, http.StatusInternalServerError, "home", web.PageData{
			Flashes: []string{fmt.Sprintf("An error occurred. %s could not be saved.", label)},
		})
	}
}

// queryFailed maps a read error to the not-found or server error page.
func (h *Handler) queryFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	h.Logger.Error("API", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	h.errorPage(w, r, http.StatusInternalServerError, "Server Error", "Something went wrong. Please try again.")
}

// deleteFailed answers a DELETE with JSON.
func (h *Handler) deleteFailed(w http.ResponseWriter, r *http.Request, err error, kind string) {
	if errors.Is(err, models.ErrNotFound) {
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse(kind+" not found", err.Error()))
		return
	}
	h.Logger.Error("API", fmt.Sprintf("DELETE %s: %v", r.URL.Path, err))
	h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse(kind+" could not be deleted", "internal error"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := utils.WriteJSON(w, status, data); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to encode response: %v", err))
	}
}

// pathID reads the numeric {id} parameter. ok is false when it does not fit
// an int64, which is answered like any unknown id.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// parseForm reads the urlencoded body. A malformed body is a 400.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return false
	}
	return true
}
