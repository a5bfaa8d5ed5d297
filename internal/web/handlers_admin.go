package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mgnrega-tools/entrydesk/internal/core"
	"github.com/mgnrega-tools/entrydesk/internal/logging"
)

// handleAdmin renders the filtered listing across all three record types.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.Filter{
		BlockName: q.Get("block_name"),
		Panchayat: q.Get("panchayat"),
	}

	view, err := s.service.Admin(r.Context(), filter)
	if err != nil {
		logging.FromContext(r.Context()).Error("admin view failed", "error", err)
		http.Error(w, core.MapError(err).String(), http.StatusInternalServerError)
		return
	}

	s.render(w, r, tmplAdmin, http.StatusOK, adminPage{
		Title:   "Admin",
		Flashes: s.sessions.popFlashes(w, r),
		View:    view,
	})
}

// recordRef extracts and validates the {category}/{id} URL segments.
func recordRef(r *http.Request) (core.Category, int64, error) {
	cat, err := core.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid id %q: %w", chi.URLParam(r, "id"), core.ErrNotFound)
	}
	return cat, id, nil
}

// flashRedirect queues a banner and redirects, the common exit path for the
// admin maintenance handlers.
func (s *Server) flashRedirect(w http.ResponseWriter, r *http.Request, level, message, target string) {
	s.sessions.addFlash(w, r, level, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// editTitle returns the edit page heading for a category.
func editTitle(cat core.Category) string {
	switch cat {
	case core.CategorySemi:
		return "Edit Semi-Skilled Registration"
	case core.CategoryJobcard:
		return "Edit Deleted Jobcard Request"
	default:
		return "Edit Delete Voucher Request"
	}
}

// editFields fetches the record and builds its edit form field list.
func (s *Server) editFields(r *http.Request, cat core.Category, id int64) ([]formField, error) {
	switch cat {
	case core.CategorySemi:
		reg, err := s.service.GetRegistration(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return registrationFields(*reg), nil
	case core.CategoryJobcard:
		req, err := s.service.GetJobcardRequest(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return jobcardFields(*req), nil
	default:
		req, err := s.service.GetVoucherRequest(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return voucherFields(*req), nil
	}
}

// handleEditForm renders the edit form for a record.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	cat, id, err := recordRef(r)
	if err != nil {
		s.flashRedirect(w, r, "danger", core.MapError(err).String(), "/admin")
		return
	}

	fields, err := s.editFields(r, cat, id)
	if err != nil {
		s.flashRedirect(w, r, "danger", core.MapError(err).String(), "/admin")
		return
	}

	s.renderEntryForm(w, r, http.StatusOK, editTitle(cat),
		fmt.Sprintf("/edit/%s/%d", cat, id), fields, s.sessions.popFlashes(w, r))
}

// handleEditSubmit applies submitted fields to a stored record. A field
// present in the payload replaces the stored value; an absent field is left
// untouched.
func (s *Server) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	cat, id, err := recordRef(r)
	if err != nil {
		s.flashRedirect(w, r, "danger", core.MapError(err).String(), "/admin")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	var fields []formField

	switch cat {
	case core.CategorySemi:
		reg, gerr := s.service.GetRegistration(r.Context(), id)
		if gerr != nil {
			err = gerr
			break
		}
		overlayRegistration(r.PostForm, reg)
		fields = registrationFields(*reg)
		err = s.service.UpdateRegistration(r.Context(), reg)

	case core.CategoryJobcard:
		req, gerr := s.service.GetJobcardRequest(r.Context(), id)
		if gerr != nil {
			err = gerr
			break
		}
		overlayJobcardRequest(r.PostForm, req)
		fields = jobcardFields(*req)
		err = s.service.UpdateJobcardRequest(r.Context(), req)

	default:
		req, gerr := s.service.GetVoucherRequest(r.Context(), id)
		if gerr != nil {
			err = gerr
			break
		}
		overlayVoucherRequest(r.PostForm, req)
		fields = voucherFields(*req)
		err = s.service.UpdateVoucherRequest(r.Context(), req)
	}

	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			s.renderEntryForm(w, r, http.StatusUnprocessableEntity, editTitle(cat),
				fmt.Sprintf("/edit/%s/%d", cat, id), applyFieldErrors(fields, verr), nil)
			return
		}
		logging.FromContext(r.Context()).Error("edit failed",
			"category", cat, "id", id, "error", err)
		s.flashRedirect(w, r, "danger", core.MapError(err).String(), "/admin")
		return
	}

	logging.FromContext(r.Context()).Info("record updated",
		"category", cat, "id", id, "session_id", s.sessions.sessionID(r))
	s.flashRedirect(w, r, "success", "Entry updated.", "/admin")
}

// handleDelete removes a record and returns to the admin view.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	cat, id, err := recordRef(r)
	if err != nil {
		s.flashRedirect(w, r, "danger", core.MapError(err).String(), "/admin")
		return
	}

	if err := s.service.Delete(r.Context(), cat, id); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			logging.FromContext(r.Context()).Error("delete failed",
				"category", cat, "id", id, "error", err)
		}
		s.flashRedirect(w, r, "danger", core.MapError(err).String(), "/admin")
		return
	}

	logging.FromContext(r.Context()).Info("record deleted",
		"category", cat, "id", id, "session_id", s.sessions.sessionID(r))
	s.flashRedirect(w, r, "success", "Entry deleted.", "/admin")
}
