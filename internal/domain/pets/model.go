package pets

import "time"

// Species define las especies soportadas por la guardería.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el perfil de una mascota inscrita en la guardería.
// El tutor es el destinatario de los recordatorios de salud.
type Pet struct {
	ID          string
	TutorUserID string

	Name    string
	Species string // dog, cat
	Breed   string
	Sex     string // male, female, unknown

	TutorName  string
	TutorPhone string // E.164; destino de los mensajes de WhatsApp

	BirthDate *time.Time
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
