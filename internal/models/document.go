package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BioData is the denormalized profile document exchanged over the API.
// It is the unit of caching and the unit of validation: writes always
// supply the complete document, never a partial update.
type BioData struct {
	Profile  BioProfile    `json:"profile"`
	Links    []LinkItem    `json:"links" validate:"dive"`
	Products []ProductItem `json:"products" validate:"dive"`
	AITools  []ToolItem    `json:"aiTools" validate:"dive"`
}

type BioProfile struct {
	Name        string           `json:"name" validate:"required"`
	Tagline     string           `json:"tagline" validate:"required"`
	Avatar      string           `json:"avatar" validate:"required,url"`
	CoverImage  string           `json:"coverImage" validate:"required,url"`
	SocialLinks []SocialLinkItem `json:"socialLinks" validate:"dive"`
}

type SocialLinkItem struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	Icon string `json:"icon" validate:"required"`
}

// LinkItem is one link-in-bio entry. The id is assigned on read
// (1-based position in the list) and ignored on write.
type LinkItem struct {
	ID              int    `json:"id"`
	Name            string `json:"name" validate:"required"`
	URL             string `json:"url" validate:"required,url"`
	Description     string `json:"description" validate:"required"`
	BackgroundImage string `json:"backgroundImage" validate:"required,url"`
}

type ProductItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"required,url"`
	Price string `json:"price" validate:"required"`
	URL   string `json:"url" validate:"required"`
}

type ToolItem struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo" validate:"required,url"`
	URL  string `json:"url" validate:"required,url"`
}

var validate = newDocumentValidator()

func newDocumentValidator() *validator.Validate {
	v := validator.New()
	// Report field paths with their JSON names so validation details match
	// the wire format ("profile.avatar", not "Profile.Avatar").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the whole document and returns one message per failed
// field, or nil when the document is valid.
func (d *BioData) Validate() []string {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the root struct name; strip it.
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		details = append(details, fmt.Sprintf("%s: %s", path, validationMessage(fe)))
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// DefaultBioData is the static fallback served when no profile row exists
// for the requested username.
func DefaultBioData() *BioData {
	return &BioData{
		Profile: BioProfile{
			Name:        "Default Profile",
			Tagline:     "Premium Bio Website",
			Avatar:      "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde",
			CoverImage:  "https://images.unsplash.com/photo-1579546929518-9e396f3cc809",
			SocialLinks: []SocialLinkItem{},
		},
		Links:    []LinkItem{},
		Products: []ProductItem{},
		AITools:  []ToolItem{},
	}
}
