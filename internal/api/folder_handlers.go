package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"markeep/internal/database"
	domainerrors "markeep/internal/errors"
	"markeep/internal/models"
)

type CreateFolderRequest struct {
	Name string   `json:"name" validate:"required,max=100" example:"Travel 2024"`
	Tags []string `json:"tags" validate:"max=10,dive,required,max=30" example:"travel,2024"`
}

type AddTagRequest struct {
	Name string `json:"name" validate:"required,max=30" example:"travel"`
}

type AddSiteRequest struct {
	URL     string `json:"url" validate:"required,http_url,max=2048" example:"https://example.com"`
	Title   string `json:"title" validate:"max=200" example:"Example"`
	Comment string `json:"comment" validate:"max=1000" example:"worth a read"`
}

// FolderDetailResponse is a folder with its tags and bookmarks.
type FolderDetailResponse struct {
	models.Folder
	Sites []models.Site `json:"sites"`
}

type PinResponse struct {
	FolderID int64 `json:"folderId" example:"42"`
	PinCount int   `json:"pinCount" example:"7"`
	Pinned   bool  `json:"pinned" example:"true"`
}

// mapStoreError turns store sentinels into domain errors.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, database.ErrFolderNotFound):
		return domainerrors.NotFound("folder not found")
	case errors.Is(err, database.ErrUserNotFound):
		return domainerrors.NotFound("user not found")
	case errors.Is(err, database.ErrAlreadyPinned):
		return domainerrors.AlreadyExists("folder is already pinned")
	case errors.Is(err, database.ErrNotPinned):
		return domainerrors.NotFound("folder is not pinned")
	case errors.Is(err, database.ErrDuplicateTag):
		return domainerrors.AlreadyExists("folder already has this tag")
	default:
		return domainerrors.From(err)
	}
}

func folderIDParam(r *http.Request) (int64, error) {
	return parseIDParam(chi.URLParam(r, "folderId"), "folder id")
}

// ownedFolder loads the folder and checks that userID owns it.
func (s *Server) ownedFolder(r *http.Request, folderID, userID int64) (*models.Folder, error) {
	folder, err := s.store.GetFolderByID(r.Context(), folderID)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	if folder == nil {
		return nil, domainerrors.NotFound("folder not found")
	}
	if folder.UserID != userID {
		return nil, domainerrors.Forbidden("folder belongs to another user")
	}
	return folder, nil
}

// @Summary      List folders by popularity
// @Description  Returns one page of folders ordered by pin count, most pinned first, ties broken by ID. With keywords, only folders whose name or any tag contains at least one keyword (case-insensitive) are listed.
// @Tags         folders
// @Produce      json
// @Param        page      query     int     false  "Zero-based page index" default(0)
// @Param        size      query     int     false  "Page size, 1 to 100" default(10)
// @Param        keywords  query     []string  false  "Keywords, repeated or comma separated" collectionFormat(multi)
// @Success      200       {object}  models.Page[models.Folder]
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /folders [get]
func (s *Server) ListFoldersHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	keywords, err := parseKeywords(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.store.FindAllOrderByPinCountKeywords(r.Context(), req, keywords)
	if err != nil {
		s.writeError(w, r, domainerrors.Internal(err))
		return
	}

	s.writeJSON(w, http.StatusOK, page)
}

// @Summary      Create a folder
// @Description  Creates a folder owned by the current user together with its tags.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        folder  body      CreateFolderRequest  true  "Folder"
// @Success      201     {object}  models.Folder
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Router       /folders [post]
func (s *Server) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateFolderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Same folding as search keywords, so "Travel" and "travel" are one tag.
	tags, err := models.NormalizeKeywords(req.Tags)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	folder, err := s.store.CreateFolderWithTags(r.Context(), database.FolderWithTags{
		UserID: claims.UserID,
		Name:   strings.TrimSpace(req.Name),
		Tags:   tags,
	})
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	s.logger.Info("folder created", slog.Int64("folder_id", folder.ID), slog.Int64("user_id", claims.UserID))
	s.writeJSON(w, http.StatusCreated, folder)
}

// @Summary      Get a folder
// @Description  Returns a folder with its tags and sites.
// @Tags         folders
// @Produce      json
// @Param        folderId  path      int  true  "Folder ID"
// @Success      200       {object}  FolderDetailResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId} [get]
func (s *Server) GetFolderHandler(w http.ResponseWriter, r *http.Request) {
	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp FolderDetailResponse
	err = s.store.ExecReadTx(r.Context(), func(q *database.Queries) error {
		folder, err := q.GetFolderByID(r.Context(), folderID)
		if err != nil {
			return err
		}
		if folder == nil {
			return database.ErrFolderNotFound
		}
		resp.Folder = *folder
		resp.Sites, err = q.ListSitesByFolderID(r.Context(), folderID)
		return err
	})
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// @Summary      Delete a folder
// @Description  Deletes a folder owned by the current user, with its tags, sites and pins.
// @Tags         folders
// @Security     BearerAuth
// @Param        folderId  path      int  true  "Folder ID"
// @Success      204       {null}    nil  "No Content"
// @Failure      401       {object}  ErrorResponse
// @Failure      403       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId} [delete]
func (s *Server) DeleteFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.ownedFolder(r, folderID, claims.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}

	deleted, err := s.store.DeleteFolder(r.Context(), folderID, claims.UserID)
	if err != nil {
		s.writeError(w, r, domainerrors.Internal(err))
		return
	}
	if !deleted {
		s.writeError(w, r, domainerrors.NotFound("folder not found"))
		return
	}

	s.logger.Info("folder deleted", slog.Int64("folder_id", folderID), slog.Int64("user_id", claims.UserID))
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Add a tag
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      int            true  "Folder ID"
// @Param        tag       body      AddTagRequest  true  "Tag"
// @Success      201       {object}  models.Tag
// @Failure      400       {object}  ErrorResponse
// @Failure      403       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId}/tags [post]
func (s *Server) AddTagHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req AddTagRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	folder, err := s.ownedFolder(r, folderID, claims.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	for _, t := range folder.Tags {
		if strings.EqualFold(t.Name, name) {
			s.writeError(w, r, domainerrors.AlreadyExists("folder already has this tag"))
			return
		}
	}

	tag, err := s.store.CreateTag(r.Context(), folderID, name)
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, tag)
}

// @Summary      Add a site
// @Description  Bookmarks a URL in a folder owned by the current user.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      int             true  "Folder ID"
// @Param        site      body      AddSiteRequest  true  "Site"
// @Success      201       {object}  models.Site
// @Failure      400       {object}  ErrorResponse
// @Failure      403       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId}/sites [post]
func (s *Server) AddSiteHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req AddSiteRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.ownedFolder(r, folderID, claims.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}

	site, err := s.store.CreateSite(r.Context(), database.CreateSiteParams{
		FolderID: folderID,
		URL:      req.URL,
		Title:    strings.TrimSpace(req.Title),
		Comment:  strings.TrimSpace(req.Comment),
	})
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, site)
}

// @Summary      List a folder's sites
// @Tags         folders
// @Produce      json
// @Param        folderId  path      int  true  "Folder ID"
// @Success      200       {array}   models.Site
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId}/sites [get]
func (s *Server) ListSitesHandler(w http.ResponseWriter, r *http.Request) {
	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var sites []models.Site
	err = s.store.ExecReadTx(r.Context(), func(q *database.Queries) error {
		folder, err := q.GetFolderByID(r.Context(), folderID)
		if err != nil {
			return err
		}
		if folder == nil {
			return database.ErrFolderNotFound
		}
		sites, err = q.ListSitesByFolderID(r.Context(), folderID)
		return err
	})
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, sites)
}

// @Summary      Check whether the current user pinned a folder
// @Tags         pins
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      int  true  "Folder ID"
// @Success      200       {object}  PinResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId}/pin [get]
func (s *Server) PinStatusHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp PinResponse
	err = s.store.ExecReadTx(r.Context(), func(q *database.Queries) error {
		folder, err := q.GetFolderByID(r.Context(), folderID)
		if err != nil {
			return err
		}
		if folder == nil {
			return database.ErrFolderNotFound
		}
		resp.FolderID, resp.PinCount = folder.ID, folder.PinCount
		resp.Pinned, err = q.IsPinned(r.Context(), claims.UserID, folderID)
		return err
	})
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// @Summary      Pin a folder
// @Description  Pins a folder for the current user and notifies the folder's owner.
// @Tags         pins
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      int  true  "Folder ID"
// @Success      200       {object}  PinResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId}/pin [post]
func (s *Server) PinFolderHandler(w http.ResponseWriter, r *http.Request) {
	s.changePin(w, r, true)
}

// @Summary      Unpin a folder
// @Tags         pins
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      int  true  "Folder ID"
// @Success      200       {object}  PinResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /folders/{folderId}/pin [delete]
func (s *Server) UnpinFolderHandler(w http.ResponseWriter, r *http.Request) {
	s.changePin(w, r, false)
}

func (s *Server) changePin(w http.ResponseWriter, r *http.Request, pin bool) {
	claims := GetUserFromContext(r.Context())

	folderID, err := folderIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var res *database.PinResult
	if pin {
		res, err = s.store.PinFolder(r.Context(), claims.UserID, folderID)
	} else {
		res, err = s.store.UnpinFolder(r.Context(), claims.UserID, folderID)
	}
	if err != nil {
		s.writeError(w, r, mapStoreError(err))
		return
	}

	// Published after commit so that clients never see an event that
	// GET /user/events cannot return.
	s.wsHub.Publish(res.OwnerID, res.Event)

	s.writeJSON(w, http.StatusOK, PinResponse{FolderID: res.FolderID, PinCount: res.PinCount, Pinned: pin})
}
