package registry

// FallbackRecords is shown whenever the registry source cannot be loaded.
// Callers receive a fresh copy on every call.
func FallbackRecords() []AssetRecord {
	return []AssetRecord{
		{
			RGBNumber:     1,
			InscriptionID: "inscription_rust.html",
			ContractID:    "rgb:wW5Q0bJm-placeholder",
			SchemaID:      "rgb:sch:~6rjymf3GTE840lb5JoXm2aFwE8eWCk3mCjOf_mUztE#spider-montana-fantasy",
			ContractType:  "RGB21 (UDA)",
			AssetName:     "Goddess GOAT #818",
			Description:   "A unique digital collectible from the Goddess GOAT collection.",
			Supply:        1,
			CreatedAt:     "2024-05-21T10:00:00Z",
			Checksum:      "c8a93474be3d21f7761c1691d82168af3858e1c5b49a6d2bce71d2989e42eb8d",
			ImageDetails: &ImageDetails{
				Format:      "JPEG (baseline, 8-bit, 3 components)",
				Dimensions:  "400×400 pixels",
				Size:        "914 bytes",
				Location:    "Offset 174 in decoded binary",
				Compression: "Extremely high (typical for on-chain smallblob)",
				VisualDesc:  "Minimalist placeholder rendered as a near-white abstract field.",
			},
		},
		{
			RGBNumber:     0,
			InscriptionID: "6f1ad2c1b5e04c7e9a3d8b2f4e6c0a9d7b5e3c1a2f4d6b8e0c2a4f6d8b0e2c4ai0",
			ContractType:  "RGB20 (Fungible)",
			Description:   "Standard fungible token for utility access.",
			Supply:        1000000,
			CreatedAt:     "2024-05-21T10:00:00Z",
		},
	}
}
