package pets

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
)

// Gateway es lo que el módulo necesita del backend.
type Gateway interface {
	ListPets(ctx context.Context, userID int64) ([]Pet, error)
	GetPet(ctx context.Context, id int64) (Pet, error)
	CreatePet(ctx context.Context, in Payload) (Pet, error)
	UpdatePet(ctx context.Context, id int64, in Payload) (Pet, error)
	DeletePet(ctx context.Context, id int64) error
}

type Service struct {
	gw  Gateway
	now func() time.Time
}

func NewService(gw Gateway) *Service {
	return &Service{
		gw:  gw,
		now: time.Now,
	}
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID int64) ([]Pet, error) {
	if ownerUserID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.gw.ListPets(ctx, ownerUserID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrInvalidInput
	}
	return s.gw.GetPet(ctx, id)
}

// EditDraft trae el registro fresco y lo convierte en borrador de edición.
func (s *Service) EditDraft(ctx context.Context, id int64) (Draft, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return DraftFromPet(p), nil
}

func (s *Service) Create(ctx context.Context, ownerUserID int64, d Draft) (Pet, error) {
	if ownerUserID <= 0 {
		return Pet{}, ErrInvalidInput
	}
	if err := d.Validate(s.now()); err != nil {
		return Pet{}, err
	}
	return s.gw.CreatePet(ctx, d.Payload(ownerUserID))
}

func (s *Service) Update(ctx context.Context, id, ownerUserID int64, d Draft) (Pet, error) {
	if id <= 0 || ownerUserID <= 0 {
		return Pet{}, ErrInvalidInput
	}
	if err := d.Validate(s.now()); err != nil {
		return Pet{}, err
	}
	return s.gw.UpdatePet(ctx, id, d.Payload(ownerUserID))
}

// Delete exige confirmación explícita del dueño.
func (s *Service) Delete(ctx context.Context, id int64, confirmed bool) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.gw.DeletePet(ctx, id)
}
