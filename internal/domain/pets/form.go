package pets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "golang.org/x/image/webp"

	"pet-care-dashboard/internal/platform/validation"
	"pet-care-dashboard/internal/ports/backend"
)

const MaxPhotoBytes = 2 << 20

var (
	ErrPhotoTooLarge   = errors.New("photo exceeds 2MB")
	ErrPhotoNotAnImage = errors.New("photo must be a jpeg, png, gif or webp image")
)

// Draft es el borrador del formulario de alta/edición.
type Draft struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Species         string  `json:"species" validate:"required,max=50"`
	Breed           string  `json:"breed" validate:"max=100"`
	Gender          Gender  `json:"gender" validate:"required,oneof=Male Female"`
	BirthDate       string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Weight          float64 `json:"weight" validate:"gte=0,lte=500"`
	Sterilized      bool    `json:"sterilized"`
	Allergies       string  `json:"allergies" validate:"max=1000"`
	FoodPreferences string  `json:"food_preferences" validate:"max=1000"`

	// PhotoURL es la foto ya guardada; PendingPhoto un data URI a subir.
	PhotoURL     string `json:"photo_url,omitempty"`
	PendingPhoto string `json:"pending_photo,omitempty"`
}

// DraftFromPet repuebla el formulario de edición desde el registro del servidor.
func DraftFromPet(p Pet) Draft {
	d := Draft{
		Name:            p.Name,
		Species:         p.Species,
		Breed:           p.Breed,
		Gender:          p.Gender,
		Weight:          float64(p.Weight),
		Sterilized:      bool(p.Sterilized),
		Allergies:       p.Allergies,
		FoodPreferences: p.FoodPreferences,
	}
	if !p.BirthDate.IsZero() {
		d.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	if strings.HasPrefix(p.Photo, "data:") {
		d.PendingPhoto = p.Photo
	} else {
		d.PhotoURL = p.Photo
	}
	return d
}

// Validate devuelve *backend.ValidationError con mensajes por campo (json name).
func (d Draft) Validate(now time.Time) error {
	fields := map[string][]string{}

	if err := validation.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			name := jsonName(fe.Field())
			fields[name] = append(fields[name], describe(fe))
		}
	}

	if d.BirthDate != "" && len(fields["birth_date"]) == 0 {
		if bd, err := time.Parse("2006-01-02", d.BirthDate); err == nil && bd.After(now) {
			fields["birth_date"] = append(fields["birth_date"], "cannot be in the future")
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &backend.ValidationError{Message: "Please fix the highlighted fields.", Fields: fields}
}

// Payload arma el cuerpo para la API. La foto solo viaja si hay una nueva pendiente.
func (d Draft) Payload(ownerID int64) Payload {
	return Payload{
		UserID:          ownerID,
		Name:            strings.TrimSpace(d.Name),
		Species:         strings.TrimSpace(d.Species),
		Breed:           strings.TrimSpace(d.Breed),
		Gender:          d.Gender,
		BirthDate:       d.BirthDate,
		Weight:          d.Weight,
		Sterilized:      Flag(d.Sterilized),
		Allergies:       strings.TrimSpace(d.Allergies),
		FoodPreferences: strings.TrimSpace(d.FoodPreferences),
		Photo:           d.PendingPhoto,
	}
}

// AttachPhoto valida la imagen y la guarda como data URI base64 pendiente de subir.
func (d *Draft) AttachPhoto(raw []byte) error {
	if len(raw) > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}

	ct := http.DetectContentType(raw)
	switch ct {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return ErrPhotoNotAnImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrPhotoNotAnImage, err)
	}

	d.PendingPhoto = "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(raw)
	return nil
}

func jsonName(field string) string {
	switch field {
	case "BirthDate":
		return "birth_date"
	case "FoodPreferences":
		return "food_preferences"
	default:
		return strings.ToLower(field)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
