package request

type CreateTenant struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Token     string `json:"token" validate:"required"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

type UpdateTenant struct {
	Name      *string `json:"name"`
	Token     *string `json:"token"`
	AccessKey *string `json:"access_key"`
	SecretKey *string `json:"secret_key"`
	IsValid   *bool   `json:"is_valid"`
}
