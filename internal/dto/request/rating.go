package request

type RateRequest struct {
	StoreID string `json:"store_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}
