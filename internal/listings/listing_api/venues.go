package listing_api

import (
	"fmt"
	"net/http"

	"ms-directory/internal/listings/forms"
	"ms-directory/internal/utils"
	"ms-directory/internal/web"
)

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.ListVenuesGrouped(r.Context())
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "venues", web.PageData{Title: "Venues", Data: groups})
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	term := r.PostFormValue("search_term")

	res, err := h.Service.Search(r.Context(), "venues", term)
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search_venues", web.PageData{
		Title: "Venue search",
		Data:  web.SearchPage{Term: term, Base: "/venues", SearchResult: res},
	})
}

func (h *Handler) ShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.Service.VenueDetail(r.Context(), id)
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_venue", web.PageData{Title: detail.Name, Data: detail})
}

func (h *Handler) NewVenueForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "venue_form", web.PageData{
		Title:  "List a new venue",
		Action: "/venues/create",
		Form:   forms.VenueForm{},
	})
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	form := forms.DecodeVenueForm(r.PostForm)

	venue, err := h.Service.CreateVenue(r.Context(), form)
	if err != nil {
		h.submitFailed(w, r, err, "venue_form", web.PageData{
			Title:  "List a new venue",
			Action: "/venues/create",
			Form:   form,
		}, "Venue "+form.Name)
		return
	}
	h.flashAndRedirect(w, r, "/", fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
}

func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "venue_form", web.PageData{
		Title:  "Edit venue " + venue.Name,
		Action: fmt.Sprintf("/venues/%d/edit", id),
		Form:   forms.VenueFormFrom(venue),
	})
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	form := forms.DecodeVenueForm(r.PostForm)

	venue, err := h.Service.UpdateVenue(r.Context(), id, form)
	if err != nil {
		h.submitFailed(w, r, err, "venue_form", web.PageData{
			Title:  "Edit venue",
			Action: fmt.Sprintf("/venues/%d/edit", id),
			Form:   form,
		}, "Venue "+form.Name)
		return
	}
	h.flashAndRedirect(w, r, fmt.Sprintf("/venues/%d", id), fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if err := h.Service.DeleteVenue(r.Context(), id); err != nil {
		h.deleteFailed(w, r, err, "Venue")
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Venue deleted", map[string]int64{"id": id}))
}
