package listing_api

import (
	"net/http"

	"ms-directory/internal/listings/forms"
	"ms-directory/internal/utils"
	"ms-directory/internal/web"
)

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Service.ListShowsChronological(r.Context())
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shows", web.PageData{Title: "Shows", Data: shows})
}

func (h *Handler) NewShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "show_form", web.PageData{
		Title: "List a new show",
		Form:  forms.ShowForm{StartTime: utils.FormatShowTime(h.Service.Now())},
	})
}

func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	form := forms.DecodeShowForm(r.PostForm)

	if _, err := h.Service.CreateShow(r.Context(), form); err != nil {
		h.submitFailed(w, r, err, "show_form", web.PageData{Title: "List a new show", Form: form}, "Show")
		return
	}
	h.flashAndRedirect(w, r, "/", "Show was successfully listed!")
}
