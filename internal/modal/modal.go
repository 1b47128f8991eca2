// Package modal provides the single-slot confirmation and notification
// surface shared by every mutating action. Only one modal is visible at a
// time; opening a new one while another is open replaces it, so the last
// caller always wins and nothing is queued behind a dismissed dialog.
package modal

import "sync"

// Kind classifies the modal being displayed.
type Kind string

const (
	KindInfo    Kind = "info"
	KindConfirm Kind = "confirm"
	KindError   Kind = "error"
)

// Default confirm-button labels, overridable per call.
const (
	DefaultConfirmText = "Confirmar"
	DefaultCancelText  = "Cancelar"
)

// State describes the currently displayed modal, if any.
type State struct {
	Open        bool
	Title       string
	Message     string
	Kind        Kind
	ConfirmText string
	CancelText  string

	onConfirm func()
}

// Service owns the modal slot.
type Service struct {
	mu    sync.Mutex
	state State
}

// NewService returns a service with an empty slot.
func NewService() *Service {
	return &Service{}
}

// State returns a copy of the current modal state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ShowSuccess displays an informational modal.
func (s *Service) ShowSuccess(title, message string) {
	s.show(State{Open: true, Title: title, Message: message, Kind: KindInfo})
}

// ShowError displays an error modal.
func (s *Service) ShowError(title, message string) {
	s.show(State{Open: true, Title: title, Message: message, Kind: KindError})
}

// ShowConfirm displays a two-button modal. Confirm runs onConfirm; the labels
// fall back to the defaults when empty.
func (s *Service) ShowConfirm(title, message string, onConfirm func(), confirmText, cancelText string) {
	if confirmText == "" {
		confirmText = DefaultConfirmText
	}
	if cancelText == "" {
		cancelText = DefaultCancelText
	}
	s.show(State{
		Open:        true,
		Title:       title,
		Message:     message,
		Kind:        KindConfirm,
		ConfirmText: confirmText,
		CancelText:  cancelText,
		onConfirm:   onConfirm,
	})
}

// Confirm invokes the affirmative callback of an open confirm modal and
// clears the slot. It is a no-op for informational modals.
func (s *Service) Confirm() {
	s.mu.Lock()
	callback := s.state.onConfirm
	open := s.state.Open && s.state.Kind == KindConfirm
	s.state = State{}
	s.mu.Unlock()

	if open && callback != nil {
		callback()
	}
}

// Hide clears the slot unconditionally. Hiding a confirm modal counts as
// cancellation: the callback is discarded without running.
func (s *Service) Hide() {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
}

func (s *Service) show(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
