package modal

import "testing"

func TestShowSuccessAndHide(t *testing.T) {
	s := NewService()

	s.ShowSuccess("¡Perfil Agregado!", "El perfil se ha agregado exitosamente.")
	state := s.State()
	if !state.Open || state.Kind != KindInfo {
		t.Fatalf("expected open info modal, got %+v", state)
	}

	s.Hide()
	if s.State().Open {
		t.Fatal("expected slot cleared after hide")
	}
}

func TestLastCallerWins(t *testing.T) {
	s := NewService()

	s.ShowError("Error al Agregar", "No se pudo agregar el perfil.")
	s.ShowSuccess("¡Perfil Agregado!", "Listo.")

	state := s.State()
	if state.Kind != KindInfo || state.Title != "¡Perfil Agregado!" {
		t.Fatalf("expected newest modal to replace previous, got %+v", state)
	}
}

func TestConfirmRunsCallbackOnce(t *testing.T) {
	s := NewService()

	calls := 0
	s.ShowConfirm("Eliminar Perfil", "¿Estás seguro?", func() { calls++ }, "Eliminar", "Cancelar")

	state := s.State()
	if state.ConfirmText != "Eliminar" || state.CancelText != "Cancelar" {
		t.Fatalf("expected caller labels, got %+v", state)
	}

	s.Confirm()
	if calls != 1 {
		t.Fatalf("expected callback to run once, ran %d times", calls)
	}
	if s.State().Open {
		t.Fatal("expected slot cleared after confirm")
	}

	// A second confirm on the now-empty slot must not re-run the callback.
	s.Confirm()
	if calls != 1 {
		t.Fatalf("expected no further callback runs, got %d", calls)
	}
}

func TestHideCancelsConfirm(t *testing.T) {
	s := NewService()

	calls := 0
	s.ShowConfirm("Cerrar Sesión", "¿Estás seguro de que quieres cerrar sesión?", func() { calls++ }, "", "")

	state := s.State()
	if state.ConfirmText != DefaultConfirmText || state.CancelText != DefaultCancelText {
		t.Fatalf("expected default labels, got %+v", state)
	}

	s.Hide()
	if calls != 0 {
		t.Fatal("expected cancellation to discard the callback")
	}
}

func TestConfirmIgnoresInfoModals(t *testing.T) {
	s := NewService()
	s.ShowSuccess("Listo", "ok")
	s.Confirm()
	if s.State().Open {
		t.Fatal("expected confirm to clear the slot")
	}
}
