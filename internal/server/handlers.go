package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/KaramelBytes/odpanel/internal/session"
	"github.com/KaramelBytes/odpanel/internal/views"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	success(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.store.Len()})
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		failErr(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Create(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, http.StatusCreated, views.Home(sess))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	success(w, http.StatusOK, views.Home(sess))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "id")) {
		failErr(w, session.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reloadSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Reload(r.Context(), chi.URLParam(r, "id"))
	if err != nil && sess == nil {
		failErr(w, err)
		return
	}
	success(w, http.StatusOK, views.Home(sess))
}

func (s *Server) management(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	v, err := views.Management(sess)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, http.StatusOK, v)
}

func (s *Server) trips(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	cities, err := parseCities(r)
	if err != nil {
		failErr(w, err)
		return
	}
	v, err := views.Trips(sess, s.settings, views.TripsQuery{Cities: cities})
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, http.StatusOK, v)
}

func (s *Server) socio(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	v, err := views.Socio(sess, s.settings)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, http.StatusOK, v)
}

func (s *Server) dwellings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	v, err := views.Dwellings(sess, s.settings)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, http.StatusOK, v)
}

type optionLister interface {
	Options() []labels.Option
}

func (s *Server) labelSet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var lookup labels.Lookup
	switch set := chi.URLParam(r, "set"); set {
	case "cities":
		cities, err := views.CityLabels(sess, s.settings)
		if err != nil {
			failErr(w, err)
			return
		}
		lookup = cities
	case "modes":
		lookup = s.settings.Modes
	case "motives":
		lookup = s.settings.Motives
	default:
		fail(w, http.StatusNotFound, fmt.Sprintf("unknown label set %q", set))
		return
	}
	lister, ok := lookup.(optionLister)
	if !ok {
		fail(w, http.StatusNotImplemented, "label set cannot be listed")
		return
	}
	success(w, http.StatusOK, lister.Options())
}

// parseCities reads ?cities=6,14 or repeated ?cities= values. Each entry is a code or a
// "6 - Guará" option. An absent parameter selects the default cities and a present but
// empty one is an explicit empty selection.
func parseCities(r *http.Request) ([]int, error) {
	raw, present := r.URL.Query()["cities"]
	if !present {
		return nil, nil
	}
	out := []int{}
	for _, v := range raw {
		for _, tok := range strings.Split(v, ",") {
			if strings.TrimSpace(tok) == "" {
				continue
			}
			code, err := labels.ParseOption(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errBadQuery, err)
			}
			out = append(out, code)
		}
	}
	return out, nil
}
