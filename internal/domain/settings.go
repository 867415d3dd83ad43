package domain

import "time"

// StoreSettings guarda as preferências da loja, incluindo o estado da
// assinatura premium ativada por token de licença.
type StoreSettings struct {
	ID               string     `json:"id" db:"id"`
	StoreName        string     `json:"storeName" db:"store_name"`
	OwnerName        string     `json:"ownerName" db:"owner_name"`
	PixKey           *string    `json:"pixKey,omitempty" db:"pix_key"`
	Premium          bool       `json:"premium" db:"premium"`
	PremiumPlan      *string    `json:"premiumPlan,omitempty" db:"premium_plan"`
	PremiumExpiresAt *time.Time `json:"premiumExpiresAt,omitempty" db:"premium_expires_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// PremiumActive considera o flag persistido e a expiração da licença
func (s *StoreSettings) PremiumActive(now time.Time) bool {
	if s == nil || !s.Premium {
		return false
	}
	if s.PremiumExpiresAt != nil && now.After(*s.PremiumExpiresAt) {
		return false
	}
	return true
}
