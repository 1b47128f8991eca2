// Package forms implements client-side validation for the profile create and
// edit forms. Validation accumulates every failing rule into a list of
// human-readable messages instead of stopping at the first one, so the form
// can surface all problems in a single pass. A failing validation blocks the
// service call entirely.
package forms

import (
	"strconv"
	"strings"

	"github.com/meatdealer/backend/internal/models"
)

// MediaType distinguishes uploaded photos from videos.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// MediaItem is a single uploaded asset reference.
type MediaItem struct {
	URL  string
	Type MediaType
}

// Validation messages, one per rule.
const (
	MsgMediaRequired    = "Se requiere mínimo 1 archivo (foto o video)"
	MsgFirstNameBlank   = "El nombre es obligatorio"
	MsgLastNameBlank    = "El apellido es obligatorio"
	MsgAgeOutOfRange    = "La edad debe estar entre 18 y 60 años"
	MsgNoPersonalTastes = "Se requiere agregar al menos un gusto personal (música o lugar favorito)"
)

const (
	minAge = 18
	maxAge = 60
)

// ProfileForm carries the raw field values of the add/edit profile form. Age
// stays a string until validation, mirroring free-text input.
type ProfileForm struct {
	Media       []MediaItem
	FirstName   string
	LastName    string
	Age         string
	NetSalary   string
	FatherJob   string
	MotherJob   string
	Height      string
	BodySize    string
	BustSize    string
	SkinColor   string
	Nationality string
	Residence   string
	LivingWith  string
	Instagram   string
	MusicTags   []string
	PlaceTags   []string
	IsAvailable bool
}

// FromProfile seeds a form from an existing profile, merging its photos and
// videos into the single media list the form edits.
func FromProfile(p models.Profile) ProfileForm {
	media := make([]MediaItem, 0, len(p.Photos)+len(p.Videos))
	for _, url := range p.Photos {
		media = append(media, MediaItem{URL: url, Type: MediaPhoto})
	}
	for _, url := range p.Videos {
		media = append(media, MediaItem{URL: url, Type: MediaVideo})
	}

	return ProfileForm{
		Media:       media,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Age:         strconv.Itoa(p.Age),
		NetSalary:   p.NetSalary,
		FatherJob:   p.FatherJob,
		MotherJob:   p.MotherJob,
		Height:      p.Height,
		BodySize:    p.BodySize,
		BustSize:    p.BustSize,
		SkinColor:   p.SkinColor,
		Nationality: p.Nationality,
		Residence:   p.Residence,
		LivingWith:  p.LivingWith,
		Instagram:   p.Instagram,
		MusicTags:   p.MusicTags,
		PlaceTags:   p.PlaceTags,
		IsAvailable: p.IsAvailable,
	}
}

// Validate returns the accumulated list of failing rules. An empty result
// means the form may be submitted.
func (f ProfileForm) Validate() []string {
	var errs []string

	if len(f.Media) < 1 {
		errs = append(errs, MsgMediaRequired)
	}
	if strings.TrimSpace(f.FirstName) == "" {
		errs = append(errs, MsgFirstNameBlank)
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs = append(errs, MsgLastNameBlank)
	}
	if age, err := strconv.Atoi(strings.TrimSpace(f.Age)); err != nil || age < minAge || age > maxAge {
		errs = append(errs, MsgAgeOutOfRange)
	}
	if len(f.MusicTags) == 0 && len(f.PlaceTags) == 0 {
		errs = append(errs, MsgNoPersonalTastes)
	}

	return errs
}

// Apply writes the form values onto the base profile, splitting the media
// list back into photos and videos. Ownership, engagement counters, and
// timestamps are left to the service layer. Call Validate first: Apply
// assumes the age parses.
func (f ProfileForm) Apply(base models.Profile) models.Profile {
	var photos, videos []string
	for _, m := range f.Media {
		switch m.Type {
		case MediaVideo:
			videos = append(videos, m.URL)
		default:
			photos = append(photos, m.URL)
		}
	}

	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))

	base.FirstName = strings.TrimSpace(f.FirstName)
	base.LastName = strings.TrimSpace(f.LastName)
	base.Age = age
	base.NetSalary = f.NetSalary
	base.FatherJob = f.FatherJob
	base.MotherJob = f.MotherJob
	base.Height = f.Height
	base.BodySize = f.BodySize
	base.BustSize = f.BustSize
	base.SkinColor = f.SkinColor
	base.Nationality = f.Nationality
	base.Residence = f.Residence
	base.LivingWith = f.LivingWith
	base.Instagram = f.Instagram
	base.MusicTags = f.MusicTags
	base.PlaceTags = f.PlaceTags
	base.Photos = photos
	base.Videos = videos
	base.IsAvailable = f.IsAvailable

	return base
}
