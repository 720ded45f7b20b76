package entities

import "time"

// TenantPreference classifies which tenants a room owner will accept.
type TenantPreference string

const (
	TenantPreferenceAny      TenantPreference = "Any"
	TenantPreferenceWorking  TenantPreference = "Working"
	TenantPreferenceBachelor TenantPreference = "Bachelor"
	TenantPreferenceFamily   TenantPreference = "Family"
	TenantPreferenceGirls    TenantPreference = "Girls"
)

// ValidTenantPreference reports whether p is one of the accepted preferences.
func ValidTenantPreference(p TenantPreference) bool {
	switch p {
	case TenantPreferenceAny, TenantPreferenceWorking, TenantPreferenceBachelor,
		TenantPreferenceFamily, TenantPreferenceGirls:
		return true
	}
	return false
}

// Room is a rental listing owned by a single user. OwnerID references an
// externally managed identity and is never validated beyond non-emptiness.
type Room struct {
	ID               string           `json:"id" db:"id"`
	OwnerID          string           `json:"owner_id" db:"owner_id"`
	Title            string           `json:"title" db:"title"`
	Location         string           `json:"location" db:"location"`
	Price            float64          `json:"price" db:"price"`
	PropertyType     string           `json:"property_type" db:"property_type"`
	TenantPreference TenantPreference `json:"tenant_preference" db:"tenant_preference"`
	ContactNumber    string           `json:"contact_number" db:"contact_number"`
	ImageURL         string           `json:"image_url,omitempty" db:"image_url"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}
