package vetapi

import (
	"context"
	"net/http"

	"pet-care-dashboard/internal/domain/clinics"
)

func (c *Client) ListClinics(ctx context.Context) ([]clinics.Clinic, error) {
	raw, err := c.send(ctx, http.MethodGet, "/clinics", nil, true)
	if err != nil {
		return nil, err
	}
	return decodeList[clinics.Clinic](raw)
}

// ListVets trae todos los veterinarios; el filtro por clínica lo hace el caller.
func (c *Client) ListVets(ctx context.Context) ([]clinics.Veterinarian, error) {
	raw, err := c.send(ctx, http.MethodGet, "/vets", nil, true)
	if err != nil {
		return nil, err
	}
	return decodeList[clinics.Veterinarian](raw)
}
