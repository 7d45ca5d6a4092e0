package scanner

// Result is the JSON document returned by the analysis endpoint.
type Result struct {
	ID            string   `json:"id"`
	ConsignmentID string   `json:"consignment_id,omitempty"`
	Schema        string   `json:"schema,omitempty"`
	ContractType  string   `json:"contract_type,omitempty"`
	Checksum      string   `json:"checksum,omitempty"`
	Version       string   `json:"version,omitempty"`
	ImageBase64   string   `json:"image_base64,omitempty"`
	Strings       []string `json:"strings"`
	Valid         bool     `json:"valid"`
	Error         string   `json:"error,omitempty"`
}

// RegistryEntry is one record written by Scan.
type RegistryEntry struct {
	RGBNumber     int    `json:"rgb_number"`
	InscriptionID string `json:"inscription_id"`
	ContractID    string `json:"contract_id,omitempty"`
	SchemaID      string `json:"schema_id,omitempty"`
	ContractType  string `json:"contract_type,omitempty"`
	Checksum      string `json:"checksum,omitempty"`
	Version       string `json:"version,omitempty"`
}
