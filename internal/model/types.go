package model

// Metadata describes the shapes of the exported classifier. It ships
// alongside the model artifact; class names live in the separate label file.
type Metadata struct {
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	ImageSize   int     `json:"image_size"`
}
