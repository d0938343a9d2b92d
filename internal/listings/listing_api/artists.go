package listing_api

import (
	"fmt"
	"net/http"

	"ms-directory/internal/listings/forms"
	"ms-directory/internal/utils"
	"ms-directory/internal/web"
)

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Service.ListArtists(r.Context())
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "artists", web.PageData{Title: "Artists", Data: artists})
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	term := r.PostFormValue("search_term")

	res, err := h.Service.Search(r.Context(), "artists", term)
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search_artists", web.PageData{
		Title: "Artist search",
		Data:  web.SearchPage{Term: term, Base: "/artists", SearchResult: res},
	})
}

func (h *Handler) ShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.Service.ArtistDetail(r.Context(), id)
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_artist", web.PageData{Title: detail.Name, Data: detail})
}

func (h *Handler) NewArtistForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "artist_form", web.PageData{
		Title:  "List a new artist",
		Action: "/artists/create",
		Form:   forms.ArtistForm{},
	})
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	form := forms.DecodeArtistForm(r.PostForm)

	artist, err := h.Service.CreateArtist(r.Context(), form)
	if err != nil {
		h.submitFailed(w, r, err, "artist_form", web.PageData{
			Title:  "List a new artist",
			Action: "/artists/create",
			Form:   form,
		}, "Artist "+form.Name)
		return
	}
	h.flashAndRedirect(w, r, "/", fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.queryFailed(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "artist_form", web.PageData{
		Title:  "Edit artist " + artist.Name,
		Action: fmt.Sprintf("/artists/%d/edit", id),
		Form:   forms.ArtistFormFrom(artist),
	})
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	form := forms.DecodeArtistForm(r.PostForm)

	artist, err := h.Service.UpdateArtist(r.Context(), id, form)
	if err != nil {
		h.submitFailed(w, r, err, "artist_form", web.PageData{
			Title:  "Edit artist",
			Action: fmt.Sprintf("/artists/%d/edit", id),
			Form:   form,
		}, "Artist "+form.Name)
		return
	}
	h.flashAndRedirect(w, r, fmt.Sprintf("/artists/%d", id), fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
}

func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if err := h.Service.DeleteArtist(r.Context(), id); err != nil {
		h.deleteFailed(w, r, err, "Artist")
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Artist deleted", map[string]int64{"id": id}))
}
