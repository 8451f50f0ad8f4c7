package models

import "gorm.io/gorm"

// WalletType is a user-defined wallet label offered when a project logs in
// with a wallet.
type WalletType struct {
	gorm.Model
	UserID string `gorm:"uniqueIndex:idx_wallet_types_user_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_wallet_types_user_name;not null" json:"name"`
}

// SocialType is a user-defined social network label.
type SocialType struct {
	gorm.Model
	UserID string `gorm:"uniqueIndex:idx_social_types_user_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_social_types_user_name;not null" json:"name"`
}
