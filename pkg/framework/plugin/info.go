package plugin

import (
	"github.com/google/uuid"
)

// Info contains plugin metadata
type Info struct {
	ID          string // Unique plugin identifier (e.g., "com.example.myplugin")
	GUID        string // 4-character host code
	Name        string // Display name
	Version     string // Semantic version (e.g., "1.0.0")
	Vendor      string // Company/developer name
	Category    string // Plugin category (e.g., "Utility", "Routing")
	Description string
	Tags        []string
}

// UID derives a stable 16-byte identifier from the string ID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(i.ID))
}
