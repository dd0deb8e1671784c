package request

type CreateBucket struct {
	Name   string `json:"name" validate:"required,bucketname"`
	Region string `json:"region" validate:"required"`
}
