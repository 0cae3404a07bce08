package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.providers (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     display_name      TEXT,
//     status            TEXT,
//     role_verified     BOOLEAN DEFAULT FALSE,
//     suspended         BOOLEAN DEFAULT FALSE,
//     verified          BOOLEAN DEFAULT FALSE,
//     subscription_tier TEXT,
//     rating            NUMERIC,
//     review_count      INTEGER,
//     categories        JSONB,
//     created_at        TIMESTAMPTZ DEFAULT NOW()
// );

const (
	ProviderStatusDraft  = "draft"
	ProviderStatusActive = "active"
)

const (
	TierEnterprise   = "enterprise"
	TierProfessional = "professional"
	TierEssential    = "essential"
)

// Provider is the catalog profile of a service contractor. The catalog is
// owned by the onboarding/admin side of the platform; the matching engine
// only ever reads it.
type Provider struct {
	ID               uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	DisplayName      string                      `gorm:"column:display_name;type:text" json:"display_name"`
	Status           string                      `gorm:"column:status;type:text" json:"status"`
	RoleVerified     bool                        `gorm:"column:role_verified;default:false" json:"role_verified"`
	Suspended        bool                        `gorm:"column:suspended;default:false" json:"suspended"`
	Verified         bool                        `gorm:"column:verified;default:false" json:"verified"`
	SubscriptionTier string                      `gorm:"column:subscription_tier;type:text" json:"subscription_tier"`
	Rating           float64                     `gorm:"column:rating;type:numeric" json:"rating"`
	ReviewCount      int                         `gorm:"column:review_count" json:"review_count"`
	Categories       datatypes.JSONSlice[string] `gorm:"column:categories;type:jsonb" json:"categories"`
	Offerings        []ServiceOffering           `gorm:"foreignKey:ProviderID" json:"offerings"`
	CreatedAt        time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Provider) TableName() string {
	return "providers"
}

// ServiceOffering is a priced service a provider sells.
type ServiceOffering struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID  uint64  `gorm:"column:provider_id;index" json:"provider_id"`
	ServiceType string  `gorm:"column:service_type;type:text" json:"service_type"`
	PriceMin    float64 `gorm:"column:price_min;type:numeric" json:"price_min"`
	PriceMax    float64 `gorm:"column:price_max;type:numeric" json:"price_max"`
}

func (ServiceOffering) TableName() string {
	return "service_offerings"
}
