package user

type UpdateProfileDTO struct {
	Email    *string   `json:"email"`
	Industry *string   `json:"industry"`
	Skills   *[]string `json:"skills"`
}
