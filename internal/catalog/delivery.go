package catalog

import "catalog-admin/internal/models"

type DeliveryInput struct {
	IndianCost        *int64 `json:"indian_delivery_cost"`
	InternationalCost *int64 `json:"international_delivery_cost"`
}

// Normalize treats a missing cost as 0 and clamps negatives to 0.
func (in DeliveryInput) Normalize() models.Delivery {
	return models.Delivery{
		IndianCost:        clampCost(in.IndianCost),
		InternationalCost: clampCost(in.InternationalCost),
	}
}

func clampCost(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
