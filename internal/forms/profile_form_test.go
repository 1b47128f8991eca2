package forms

import (
	"slices"
	"testing"

	"github.com/meatdealer/backend/internal/models"
)

func validForm() ProfileForm {
	return ProfileForm{
		Media:     []MediaItem{{URL: "https://cdn.example.com/a.jpg", Type: MediaPhoto}},
		FirstName: "Ana",
		LastName:  "García",
		Age:       "25",
		MusicTags: []string{"Reggaeton"},
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	if errs := validForm().Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	form := ProfileForm{
		FirstName: "",
		LastName:  "García",
		Age:       "15",
		Media:     []MediaItem{{URL: "a.jpg", Type: MediaPhoto}},
	}

	errs := form.Validate()
	want := []string{MsgFirstNameBlank, MsgAgeOutOfRange, MsgNoPersonalTastes}
	if len(errs) != len(want) {
		t.Fatalf("expected %d accumulated errors, got %v", len(want), errs)
	}
	for _, msg := range want {
		if !slices.Contains(errs, msg) {
			t.Fatalf("expected %q in %v", msg, errs)
		}
	}
}

func TestValidateMediaRequired(t *testing.T) {
	form := validForm()
	form.Media = nil

	errs := form.Validate()
	if !slices.Contains(errs, MsgMediaRequired) {
		t.Fatalf("expected media message, got %v", errs)
	}
}

func TestValidateAgeBounds(t *testing.T) {
	cases := map[string]bool{
		"17":        false,
		"18":        true,
		"60":        true,
		"61":        false,
		"":          false,
		"dieciocho": false,
		" 30 ":      true,
	}

	for age, ok := range cases {
		form := validForm()
		form.Age = age
		errs := form.Validate()
		if got := !slices.Contains(errs, MsgAgeOutOfRange); got != ok {
			t.Fatalf("age %q: expected valid=%v, errors %v", age, ok, errs)
		}
	}
}

func TestValidateBlankNamesAreTrimmed(t *testing.T) {
	form := validForm()
	form.LastName = "   "
	if errs := form.Validate(); !slices.Contains(errs, MsgLastNameBlank) {
		t.Fatalf("expected last name message, got %v", errs)
	}
}

func TestValidateTastesSatisfiedByEitherList(t *testing.T) {
	form := validForm()
	form.MusicTags = nil
	form.PlaceTags = []string{"Playa"}
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected place tags to satisfy the rule, got %v", errs)
	}
}

func TestFromProfileRoundTrip(t *testing.T) {
	profile := models.Profile{
		ID:        "p1",
		FirstName: "Ana",
		LastName:  "García",
		Age:       25,
		Photos:    []string{"a.jpg", "b.jpg"},
		Videos:    []string{"c.mp4"},
		MusicTags: []string{"Pop"},
		CreatedBy: &models.User{ID: "u1"},
	}

	form := FromProfile(profile)
	if len(form.Media) != 3 {
		t.Fatalf("expected merged media list, got %v", form.Media)
	}

	updated := form.Apply(profile)
	if !slices.Equal(updated.Photos, profile.Photos) || !slices.Equal(updated.Videos, profile.Videos) {
		t.Fatalf("expected media split back, got photos %v videos %v", updated.Photos, updated.Videos)
	}
	if updated.Age != 25 || updated.ID != "p1" {
		t.Fatalf("unexpected profile after apply: %+v", updated)
	}
	if updated.CreatedBy == nil || updated.CreatedBy.ID != "u1" {
		t.Fatal("expected ownership to be preserved by apply")
	}
}
