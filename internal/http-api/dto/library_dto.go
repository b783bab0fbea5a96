package dto

type AddLibraryRequest struct {
	Category string `json:"category"`
}
