package pets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Gender define el sexo de la mascota tal como lo espera la API.
// @Enum Male, Female
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Flag es un booleano que viaja como 0/1.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(b)), `"`) {
	case "1", "true":
		*f = true
	case "0", "false", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag %s", string(b))
	}
	return nil
}

// Decimal acepta número o string numérico (el backend serializa decimales como string).
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid decimal %s", string(b))
	}
	*d = Decimal(v)
	return nil
}

// Date es una fecha sin hora; en el wire puede venir "2006-01-02" o un timestamp completo.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// Pet es el perfil de mascota del dueño.
type Pet struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Gender  Gender `json:"gender"`

	BirthDate  Date    `json:"birth_date"`
	Weight     Decimal `json:"weight"`
	Sterilized Flag    `json:"sterilized"`

	Allergies       string `json:"allergies"`
	FoodPreferences string `json:"food_preferences"`

	// URL del backend o data URI base64 pendiente de subir.
	Photo string `json:"photo,omitempty"`
}

// AgeYears calcula años cumplidos a now (0 si no hay fecha).
func (p Pet) AgeYears(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	years := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Payload es el cuerpo que se manda en POST/PUT /pets.
type Payload struct {
	UserID          int64   `json:"user_id"`
	Name            string  `json:"name"`
	Species         string  `json:"species"`
	Breed           string  `json:"breed,omitempty"`
	Gender          Gender  `json:"gender"`
	BirthDate       string  `json:"birth_date,omitempty"`
	Weight          float64 `json:"weight,omitempty"`
	Sterilized      Flag    `json:"sterilized"`
	Allergies       string  `json:"allergies,omitempty"`
	FoodPreferences string  `json:"food_preferences,omitempty"`
	Photo           string  `json:"photo,omitempty"`
}
