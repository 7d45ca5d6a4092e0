package registry

// AssetRecord is one entry of the inscription registry. All fields except the
// number and inscription id are optional.
type AssetRecord struct {
	RGBNumber     int           `json:"rgb_number"`
	InscriptionID string        `json:"inscription_id"`
	ContractID    string        `json:"contract_id,omitempty"`
	SchemaID      string        `json:"schema_id,omitempty"`
	ContractType  string        `json:"contract_type,omitempty"`
	AssetName     string        `json:"asset_name,omitempty"`
	Description   string        `json:"description,omitempty"`
	Supply        int64         `json:"supply,omitempty"`
	CreatedAt     string        `json:"created_at,omitempty"`
	Checksum      string        `json:"checksum,omitempty"`
	Version       string        `json:"version,omitempty"`
	ImageDetails  *ImageDetails `json:"image_details,omitempty"`
}

// ImageDetails describes the embedded preview image. Presentational only.
type ImageDetails struct {
	Format      string `json:"format,omitempty"`
	Dimensions  string `json:"dimensions,omitempty"`
	Size        string `json:"size,omitempty"`
	Location    string `json:"location,omitempty"`
	Compression string `json:"compression,omitempty"`
	VisualDesc  string `json:"visual_desc,omitempty"`
}
