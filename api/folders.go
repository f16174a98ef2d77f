package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"content-coach/auth"
	"content-coach/folder"
)

type createFolderRequest struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

func (a *API) createFolder(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload := folder.Folder{
		Name:   req.Name,
		UserID: sess.UserID,
		Order:  req.Order,
	}
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	folderAccessor := folder.NewAccessor(a.db)
	f, err := folderAccessor.CreateFolder(r.Context(), payload, a.now())
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusCreated, f)
}

type getFoldersResponse struct {
	Folders []folder.Folder `json:"folders"`
}

func (a *API) getFolders(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	folderAccessor := folder.NewAccessor(a.db)
	folders, err := folderAccessor.GetFolders(r.Context(), sess.UserID)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, getFoldersResponse{Folders: folders})
}

// ownFolder loads the folder and enforces ownership, replying itself on
// failure.
func (a *API) ownFolder(w http.ResponseWriter, r *http.Request) *folder.Folder {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return nil
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid folder ID")
		return nil
	}

	folderAccessor := folder.NewAccessor(a.db)
	f, err := folderAccessor.GetFolder(r.Context(), id)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if f == nil || f.UserID != sess.UserID {
		a.Response(w, http.StatusNotFound, "folder not found")
		return nil
	}
	return f
}

type renameFolderRequest struct {
	Name string `json:"name"`
}

func (a *API) renameFolder(w http.ResponseWriter, r *http.Request) {
	f := a.ownFolder(w, r)
	if f == nil {
		return
	}

	var req renameFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		a.Response(w, http.StatusBadRequest, "name is required")
		return
	}

	folderAccessor := folder.NewAccessor(a.db)
	if err := folderAccessor.RenameFolder(r.Context(), f.ID, req.Name, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

func (a *API) archiveFolder(w http.ResponseWriter, r *http.Request) {
	f := a.ownFolder(w, r)
	if f == nil {
		return
	}

	folderAccessor := folder.NewAccessor(a.db)
	if err := folderAccessor.ToggleArchive(r.Context(), f.ID, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

func (a *API) deleteFolder(w http.ResponseWriter, r *http.Request) {
	f := a.ownFolder(w, r)
	if f == nil {
		return
	}

	folderAccessor := folder.NewAccessor(a.db)
	if err := folderAccessor.DeleteFolder(r.Context(), f.ID, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}
