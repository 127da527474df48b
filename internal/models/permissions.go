package models

// Permission type constants
const (
	PermissionTypeTab   = "tab"
	PermissionTypeStore = "store"
)

// Store filter type constants
const (
	FilterTypeAll      = "all"
	FilterTypeStore    = "loja"
	FilterTypeRegional = "regional"
)

// Default tabs granted to users with no explicit tab permission.
var DefaultTabs = []string{"indicadores", "monitor"}

// TabPermission grants a user access to a set of dashboard tabs.
type TabPermission struct {
	ID          string   `json:"id,omitempty"`
	UserID      int      `json:"userId"`
	UserName    string   `json:"userName"`
	AllowedTabs []string `json:"allowedTabs"`
}

// StorePermission restricts which stores a user may see, either by
// store code or by region.
type StorePermission struct {
	ID           string   `json:"id,omitempty"`
	UserID       int      `json:"userId"`
	UserName     string   `json:"userName"`
	FilterType   string   `json:"filterType"`
	FilterValues []string `json:"filterValues"`
}

// RLSConfig is the full row-level-security configuration.
type RLSConfig struct {
	TabPermissions   []TabPermission   `json:"tabPermissions"`
	StorePermissions []StorePermission `json:"storePermissions"`
}

// StoreFilter is the effective store restriction for one user.
type StoreFilter struct {
	FilterType   string   `json:"filterType"`
	FilterValues []string `json:"filterValues"`
}

// UserPermissions is the resolved permission set for one user,
// with defaults applied when no explicit rows exist.
type UserPermissions struct {
	UserID int         `json:"userId"`
	Tabs   []string    `json:"tabs"`
	Stores StoreFilter `json:"stores"`
}
