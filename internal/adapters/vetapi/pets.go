package vetapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pet-care-dashboard/internal/domain/pets"
)

func (c *Client) ListPets(ctx context.Context, userID int64) ([]pets.Pet, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))

	raw, err := c.send(ctx, http.MethodGet, "/pets?"+q.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	return decodeList[pets.Pet](raw)
}

func (c *Client) GetPet(ctx context.Context, id int64) (pets.Pet, error) {
	var p pets.Pet
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/pets/%d", id), nil, &p, true); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (c *Client) CreatePet(ctx context.Context, in pets.Payload) (pets.Pet, error) {
	var p pets.Pet
	if err := c.call(ctx, http.MethodPost, "/pets", in, &p, true); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (c *Client) UpdatePet(ctx context.Context, id int64, in pets.Payload) (pets.Pet, error) {
	var p pets.Pet
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/pets/%d", id), in, &p, true); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/pets/%d", id), nil, nil, true)
}
