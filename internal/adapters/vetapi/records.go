package vetapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"pet-care-dashboard/internal/domain/records"
)

func (c *Client) ListMedicalRecords(ctx context.Context, petID int64) ([]records.MedicalRecord, error) {
	q := url.Values{}
	q.Set("pet_id", strconv.FormatInt(petID, 10))

	raw, err := c.send(ctx, http.MethodGet, "/medical-records?"+q.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[records.MedicalRecord](raw)
	if err != nil {
		return nil, err
	}
	// el backend omite las colecciones vacías
	for i := range list {
		if list[i].Treatments == nil {
			list[i].Treatments = []records.Treatment{}
		}
		if list[i].Medications == nil {
			list[i].Medications = []records.Medication{}
		}
		if list[i].Vaccinations == nil {
			list[i].Vaccinations = []records.Vaccination{}
		}
	}
	return list, nil
}
