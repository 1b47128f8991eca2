package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/meatdealer/backend/internal/forms"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/permissions"
)

// ErrActionInFlight indicates a mutating action was rejected because another
// one had not resolved yet. No service call is made in that case.
var ErrActionInFlight = errors.New("ui: another action is in flight")

// begin claims the single mutating-action slot.
func (a *App) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight {
		return ErrActionInFlight
	}
	a.inFlight = true
	return nil
}

func (a *App) end() {
	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()
}

// AddProfile validates the form and submits a new catalog profile. Validation
// failures are returned for inline rendering and block the service call; a
// service failure raises an error modal and leaves the current view (and the
// unsaved form) in place.
func (a *App) AddProfile(ctx context.Context, form forms.ProfileForm) ([]string, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	if errs := form.Validate(); len(errs) > 0 {
		return errs, nil
	}

	profile := form.Apply(models.Profile{CreatedBy: a.gate.CurrentUser()})
	if _, err := a.profiles.Add(ctx, profile); err != nil {
		a.logger.Error("add profile", "error", err)
		a.modals.ShowError("Error al Agregar", "No se pudo agregar el perfil. Por favor intenta de nuevo.")
		return nil, nil
	}

	a.reloadProfiles(ctx)
	a.views.ShowCatalog()
	a.modals.ShowSuccess("¡Perfil Agregado!", "El perfil se ha agregado exitosamente al catálogo.")
	return nil, nil
}

// UpdateProfile validates and submits changes to the selected profile. The
// ownership predicate is re-evaluated here as well as at render time.
func (a *App) UpdateProfile(ctx context.Context, form forms.ProfileForm) ([]string, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	selected := a.views.State().SelectedProfile
	if selected == nil {
		a.views.ShowCatalog()
		return nil, nil
	}
	if !permissions.CanEditProfile(a.gate.CurrentUser(), selected) {
		a.modals.ShowError("Acceso Denegado", "No tienes permisos para editar este perfil. Solo el creador del perfil y los administradores pueden editarlo.")
		return nil, nil
	}

	if errs := form.Validate(); len(errs) > 0 {
		return errs, nil
	}

	updated := form.Apply(*selected)
	if _, err := a.profiles.Update(ctx, updated); err != nil {
		a.logger.Error("update profile", "profileId", selected.ID, "error", err)
		a.modals.ShowError("Error al Actualizar", "No se pudo actualizar el perfil. Por favor intenta de nuevo.")
		return nil, nil
	}

	a.reloadProfiles(ctx)
	a.views.ShowCatalog()
	a.modals.ShowSuccess("¡Perfil Actualizado!", "Los cambios se han guardado exitosamente.")
	return nil, nil
}

// DeleteProfile raises a confirm modal; only after explicit confirmation does
// the delete fire. Canceling leaves state fully unchanged.
func (a *App) DeleteProfile(ctx context.Context, profile models.Profile) {
	a.modals.ShowConfirm(
		"Eliminar Perfil",
		fmt.Sprintf("¿Estás seguro de que quieres eliminar el perfil de %s %s? Esta acción no se puede deshacer.", profile.FirstName, profile.LastName),
		func() {
			if err := a.begin(); err != nil {
				return
			}
			defer a.end()

			if err := a.profiles.Delete(ctx, profile.ID); err != nil {
				a.logger.Error("delete profile", "profileId", profile.ID, "error", err)
				a.modals.ShowError("Error al Eliminar", "No se pudo eliminar el perfil. Por favor intenta de nuevo.")
				return
			}

			a.reloadProfiles(ctx)
			a.views.ShowCatalog()
			a.modals.ShowSuccess("¡Perfil Eliminado!", "El perfil se ha eliminado exitosamente del catálogo.")
		},
		"Eliminar",
		"Cancelar",
	)
}

// ToggleLike flips the current user's like on a profile. The service response
// carries the authoritative counters, which replace the profile in the list
// and in the selection without any view transition.
func (a *App) ToggleLike(ctx context.Context, profileID string) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	updated, err := a.profiles.ToggleLike(ctx, profileID)
	if err != nil {
		a.logger.Error("toggle like", "profileId", profileID, "error", err)
		a.modals.ShowError("Error de Me Gusta", "No se pudo actualizar el me gusta. Por favor intenta de nuevo.")
		return nil
	}

	a.mu.Lock()
	for i := range a.profileList {
		if a.profileList[i].ID == updated.ID {
			a.profileList[i] = updated
			break
		}
	}
	a.mu.Unlock()
	a.views.ReplaceSelectedProfile(&updated)
	return nil
}

// CreatePrivateProfile submits a new private-video profile and returns to the
// private catalog on success.
func (a *App) CreatePrivateProfile(ctx context.Context, profile models.PrivateProfile) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	user := a.gate.CurrentUser()
	if user != nil {
		profile.OwnerID = user.ID
	}

	if _, err := a.private.Create(ctx, profile); err != nil {
		a.logger.Error("create private profile", "error", err)
		a.modals.ShowError("Error al Crear", "No se pudo crear el perfil privado. Por favor intenta de nuevo.")
		return nil
	}

	a.RefreshPrivateProfiles(ctx)
	if err := a.views.ShowPrivateVideos(user); err != nil {
		a.views.ShowCatalog()
	}
	a.modals.ShowSuccess("¡Perfil Privado Creado!", "El perfil de videos privados se ha creado exitosamente.")
	return nil
}

// UpdatePrivateProfile submits changes to the selected private profile.
func (a *App) UpdatePrivateProfile(ctx context.Context, profile models.PrivateProfile) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	selected := a.views.State().SelectedPrivate
	if selected == nil {
		a.views.ShowPrivateVideos(a.gate.CurrentUser())
		return nil
	}
	profile.ID = selected.ID

	if _, err := a.private.Update(ctx, profile); err != nil {
		a.logger.Error("update private profile", "profileId", profile.ID, "error", err)
		a.modals.ShowError("Error al Actualizar", "No se pudo actualizar el perfil privado. Por favor intenta de nuevo.")
		return nil
	}

	a.RefreshPrivateProfiles(ctx)
	if err := a.views.ShowPrivateVideos(a.gate.CurrentUser()); err != nil {
		a.views.ShowCatalog()
	}
	a.modals.ShowSuccess("¡Perfil Actualizado!", "El perfil de videos privados se ha actualizado exitosamente.")
	return nil
}

// DeletePrivateProfile confirms and removes a private profile together with
// its media.
func (a *App) DeletePrivateProfile(ctx context.Context, profile models.PrivateProfile) {
	a.modals.ShowConfirm(
		"Eliminar Perfil Privado",
		fmt.Sprintf("¿Estás seguro de que quieres eliminar el perfil %q? Esta acción no se puede deshacer y eliminará todos los videos y fotos asociados.", profile.Name),
		func() {
			if err := a.begin(); err != nil {
				return
			}
			defer a.end()

			if err := a.private.Delete(ctx, profile.ID); err != nil {
				a.logger.Error("delete private profile", "profileId", profile.ID, "error", err)
				a.modals.ShowError("Error al Eliminar", "No se pudo eliminar el perfil privado. Por favor intenta de nuevo.")
				return
			}

			a.RefreshPrivateProfiles(ctx)
			if err := a.views.ShowPrivateVideos(a.gate.CurrentUser()); err != nil {
				a.views.ShowCatalog()
			}
			a.modals.ShowSuccess("¡Perfil Eliminado!", "El perfil de videos privados se ha eliminado exitosamente.")
		},
		"Eliminar",
		"Cancelar",
	)
}

// reloadProfiles refreshes the catalog after a mutation, tolerating load
// failures (the mutation already succeeded).
func (a *App) reloadProfiles(ctx context.Context) {
	list, err := a.profiles.List(ctx)
	if err != nil {
		a.logger.Error("reload profiles", "error", err)
		return
	}
	a.mu.Lock()
	a.profileList = list
	a.mu.Unlock()
}
