package server

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// collapseRequest targets one member, or every member when Name is empty
type collapseRequest struct {
	Name string `json:"name"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (treeservice.Service, bool) {
	svc, err := s.app.Tree(r.Context(), uidFrom(r))
	if err != nil {
		respondErr(w, r, err)
		return nil, false
	}
	return svc, true
}

func memberName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"tree":    svc.Hierarchy(r.Context()),
		"orphans": svc.Orphans(r.Context()),
	})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	RespondJSON(w, http.StatusOK, svc.Stats(r.Context()))
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	RespondJSON(w, http.StatusOK, svc.Members(r.Context()))
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	member, err := svc.Member(r.Context(), memberName(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, member)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req treeservice.AddMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	member, err := svc.AddMember(r.Context(), req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, member)
}

func (s *Server) editMember(w http.ResponseWriter, r *http.Request) {
	var req treeservice.EditMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	req.Name = memberName(r)

	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	member, err := svc.EditMember(r.Context(), req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, member)
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.session(w, r)
	if !ok {
		return
	}
	removed, err := svc.DeleteMember(r.Context(), memberName(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Server) expand(w http.ResponseWriter, r *http.Request) {
	s.setCollapsed(w, r, false)
}

func (s *Server) collapse(w http.ResponseWriter, r *http.Request) {
	s.setCollapsed(w, r, true)
}

func (s *Server) setCollapsed(w http.ResponseWriter, r *http.Request, collapsed bool) {
	var req collapseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	svc, ok := s.session(w, r)
	if !ok {
		return
	}

	var err error
	switch {
	case req.Name != "":
		err = svc.SetCollapsed(r.Context(), req.Name, collapsed)
	case collapsed:
		err = svc.CollapseAll(r.Context())
	default:
		err = svc.ExpandAll(r.Context())
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, svc.Hierarchy(r.Context()))
}
