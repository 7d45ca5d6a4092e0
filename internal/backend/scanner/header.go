package scanner

import "strings"

const (
	ArmorStart            = "-----BEGIN RGB CONTRACT-----"
	ArmorEnd              = "-----END RGB CONTRACT-----"
	ConsignmentArmorStart = "-----BEGIN RGB CONSIGNMENT-----"
	ConsignmentArmorEnd   = "-----END RGB CONSIGNMENT-----"

	unknownID         = "rgb1unknown"
	consignmentPrefix = "rgb:csg"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n", `\n`, "\n")

// header holds the key/value lines preceding the first blank line of an armored block.
type header struct {
	id            string
	consignmentID string
	contract      string // Contract line only
	lastID        string // last Id line of any kind
	schema        string
	contractType  string
	checksum      string
	version       string
}

// hasArmor reports whether content carries a complete contract or consignment armor pair.
func hasArmor(content string) bool {
	return (strings.Contains(content, ArmorStart) && strings.Contains(content, ArmorEnd)) ||
		(strings.Contains(content, ConsignmentArmorStart) && strings.Contains(content, ConsignmentArmorEnd))
}

// splitArmored normalises line endings and splits at the first blank line.
func splitArmored(content string) (string, string) {
	normalized := newlineReplacer.Replace(content)
	head, body, _ := strings.Cut(normalized, "\n\n")
	return head, body
}

func parseHeader(chunk string) header {
	h := header{id: unknownID}
	for _, line := range strings.Split(chunk, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		key, val, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "Contract":
			h.id = val
			h.contract = val
		case "Id":
			h.lastID = val
			if strings.HasPrefix(val, consignmentPrefix) {
				h.consignmentID = val
			} else if h.id == unknownID {
				h.id = val
			}
		case "Schema":
			h.schema = val
		case "Type":
			h.contractType = val
		case "Check-SHA256":
			h.checksum = val
		case "Version":
			h.version = val
		}
	}
	return h
}

// cleanBody strips armor markers and every whitespace character.
func cleanBody(body string) string {
	for _, marker := range []string{ArmorStart, ArmorEnd, ConsignmentArmorStart, ConsignmentArmorEnd} {
		body = strings.ReplaceAll(body, marker, "")
	}
	return strings.Join(strings.Fields(body), "")
}
