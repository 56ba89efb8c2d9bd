package dto

type SetProfileNameRequest struct {
	Target string `json:"target" validate:"required,oneof=me other"`
	Name   string `json:"name" validate:"required"`
}

type SetProfileAvatarRequest struct {
	Target string `json:"target" validate:"required,oneof=me other"`
	// Image is the uploaded file content, base64-encoded (png/jpg/jpeg).
	Image string      `json:"image" validate:"required"`
	Crop  *CropRegion `json:"crop"`
}

type CropRegion struct {
	X      int `json:"x" validate:"min=0"`
	Y      int `json:"y" validate:"min=0"`
	Width  int `json:"width" validate:"required,min=1"`
	Height int `json:"height" validate:"required,min=1"`
}

type ProfileResponse struct {
	MeName    string `json:"me_name"`
	OtherName string `json:"other_name"`
	MePic     string `json:"me_pic"`
	OtherPic  string `json:"other_pic"`
}
