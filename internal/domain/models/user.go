package models

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
