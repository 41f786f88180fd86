package scope

import "gorm.io/gorm"

// OrderByCreatedDesc is the recency ordering every preview page uses.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
