package web

import (
	"errors"
	"net/http"

	"github.com/mgnrega-tools/entrydesk/internal/core"
	"github.com/mgnrega-tools/entrydesk/internal/logging"
)

// handleIndex renders the landing page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, tmplIndex, http.StatusOK, indexPage{
		Title:   "Home",
		Flashes: s.sessions.popFlashes(w, r),
	})
}

// handleHealth reports liveness, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// suggestions fetches autocomplete lists for form rendering. A failure is
// logged and an empty set returned; the form still works without hints.
func (s *Server) suggestions(r *http.Request) *core.Suggestions {
	sug, err := s.service.Suggestions(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Warn("suggestions unavailable", "error", err)
		return &core.Suggestions{}
	}
	return sug
}

// renderEntryForm renders one of the three entry forms.
func (s *Server) renderEntryForm(w http.ResponseWriter, r *http.Request, status int, title, action string, fields []formField, flashes []flashMessage) {
	s.render(w, r, tmplForm, status, formPage{
		Title:   title,
		Flashes: flashes,
		Action:  action,
		Submit:  "Save",
		Fields:  fields,
		Suggest: s.suggestions(r),
	})
}

// handleSemiForm renders the semi-skilled registration form, pre-filled with
// the session's remembered location.
func (s *Server) handleSemiForm(w http.ResponseWriter, r *http.Request) {
	loc := s.sessions.location(r)
	reg := core.Registration{BlockName: loc.BlockName, Panchayat: loc.Panchayat}
	s.renderEntryForm(w, r, http.StatusOK, "Semi-Skilled Registration", "/semi-skilled",
		registrationFields(reg), s.sessions.popFlashes(w, r))
}

// handleSemiSubmit persists a semi-skilled registration.
func (s *Server) handleSemiSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	var reg core.Registration
	overlayRegistration(r.PostForm, &reg)

	id, err := s.service.CreateRegistration(r.Context(), &reg)
	if err != nil {
		s.renderSubmitError(w, r, err, "Semi-Skilled Registration", "/semi-skilled",
			registrationFields(reg))
		return
	}

	logging.FromContext(r.Context()).Info("registration saved",
		"id", id, "session_id", s.sessions.sessionID(r))

	s.sessions.rememberLocation(w, r, reg.BlockName, reg.Panchayat, "")
	s.sessions.addFlash(w, r, "success", "Semi-Skilled Data Saved!")
	http.Redirect(w, r, "/semi-skilled", http.StatusSeeOther)
}

// handleJobcardForm renders the deleted-jobcard request form.
func (s *Server) handleJobcardForm(w http.ResponseWriter, r *http.Request) {
	loc := s.sessions.location(r)
	req := core.JobcardRequest{BlockName: loc.BlockName, Panchayat: loc.Panchayat}
	s.renderEntryForm(w, r, http.StatusOK, "Deleted Jobcard Request", "/deleted-jobcard",
		jobcardFields(req), s.sessions.popFlashes(w, r))
}

// handleJobcardSubmit persists a job-card deletion request.
func (s *Server) handleJobcardSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	var req core.JobcardRequest
	overlayJobcardRequest(r.PostForm, &req)

	id, err := s.service.CreateJobcardRequest(r.Context(), &req)
	if err != nil {
		s.renderSubmitError(w, r, err, "Deleted Jobcard Request", "/deleted-jobcard",
			jobcardFields(req))
		return
	}

	logging.FromContext(r.Context()).Info("jobcard request saved",
		"id", id, "session_id", s.sessions.sessionID(r))

	s.sessions.rememberLocation(w, r, req.BlockName, req.Panchayat, "")
	s.sessions.addFlash(w, r, "success", "Deleted Jobcard Saved!")
	http.Redirect(w, r, "/deleted-jobcard", http.StatusSeeOther)
}

// handleVoucherForm renders the delete-voucher request form.
func (s *Server) handleVoucherForm(w http.ResponseWriter, r *http.Request) {
	loc := s.sessions.location(r)
	req := core.VoucherRequest{BlockName: loc.BlockName, Panchayat: loc.Panchayat, Village: loc.Village}
	s.renderEntryForm(w, r, http.StatusOK, "Delete Voucher Request", "/delete-voucher",
		voucherFields(req), s.sessions.popFlashes(w, r))
}

// handleVoucherSubmit persists a voucher deletion request.
func (s *Server) handleVoucherSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	var req core.VoucherRequest
	overlayVoucherRequest(r.PostForm, &req)

	id, err := s.service.CreateVoucherRequest(r.Context(), &req)
	if err != nil {
		s.renderSubmitError(w, r, err, "Delete Voucher Request", "/delete-voucher",
			voucherFields(req))
		return
	}

	logging.FromContext(r.Context()).Info("voucher request saved",
		"id", id, "session_id", s.sessions.sessionID(r))

	s.sessions.rememberLocation(w, r, req.BlockName, req.Panchayat, req.Village)
	s.sessions.addFlash(w, r, "success", "Voucher Delete Request Saved!")
	http.Redirect(w, r, "/delete-voucher", http.StatusSeeOther)
}

// renderSubmitError re-renders a form after a failed submission, preserving
// the submitted values. Missing required fields get per-field messages and a
// 422; anything else becomes a danger banner with a 500.
func (s *Server) renderSubmitError(w http.ResponseWriter, r *http.Request, err error, title, action string, fields []formField) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		s.renderEntryForm(w, r, http.StatusUnprocessableEntity, title, action,
			applyFieldErrors(fields, verr), nil)
		return
	}

	logging.FromContext(r.Context()).Error("submission failed",
		"path", r.URL.Path, "error", err)
	banner := flashMessage{Level: "danger", Message: core.MapError(err).String()}
	s.renderEntryForm(w, r, http.StatusInternalServerError, title, action,
		fields, []flashMessage{banner})
}
