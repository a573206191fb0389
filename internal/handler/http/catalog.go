package http

import (
	"encoding/json"
	"net/http"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/utils"
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	category, err := h.services.CatalogService.CreateCategory(r.Context(), session, body.Name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("category creation failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, category)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	categories, err := h.services.CatalogService.ListCategories(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listCategories").Msg("category listing failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, categories)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	items, err := h.services.CatalogService.ListItems(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listItems").Msg("item listing failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, items)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	category, err := h.services.CatalogService.GetCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCategory").Msg("category lookup failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, category)
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.CatalogService.RenameCategory(r.Context(), session, chi.URLParam(r, "category"), body.Name); err != nil {
		log.Err(err).Str("func", "*Handler.renameCategory").Msg("category rename failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	if err := h.services.CatalogService.DeleteCategory(r.Context(), session, chi.URLParam(r, "category")); err != nil {
		log.Err(err).Str("func", "*Handler.deleteCategory").Msg("category deletion failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

type itemRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Stock int    `json:"stock"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body itemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	item, err := h.services.CatalogService.CreateItem(r.Context(), session, models.Item{
		Name:       body.Name,
		Image:      body.Image,
		Stock:      body.Stock,
		CategoryID: chi.URLParam(r, "category"),
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.createItem").Msg("item creation failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, item)
}

func (h *Handler) renameItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.CatalogService.RenameItem(r.Context(), session, chi.URLParam(r, "item"), body.Name); err != nil {
		log.Err(err).Str("func", "*Handler.renameItem").Msg("item rename failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

func (h *Handler) editItemImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.CatalogService.EditItemImage(r.Context(), session, chi.URLParam(r, "item"), body.Image); err != nil {
		log.Err(err).Str("func", "*Handler.editItemImage").Msg("item image update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

func (h *Handler) setItemStock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.CatalogService.SetItemStock(r.Context(), session, chi.URLParam(r, "item"), body.Stock); err != nil {
		log.Err(err).Str("func", "*Handler.setItemStock").Msg("item stock update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

func (h *Handler) moveItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body struct {
		CategoryID string `json:"categoryID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.CatalogService.MoveItem(r.Context(), session, chi.URLParam(r, "item"), body.CategoryID); err != nil {
		log.Err(err).Str("func", "*Handler.moveItem").Msg("item move failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	if err := h.services.CatalogService.DeleteItem(r.Context(), session, chi.URLParam(r, "item")); err != nil {
		log.Err(err).Str("func", "*Handler.deleteItem").Msg("item deletion failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}
