// Package models contains the gorm persistence models. They never leave the
// infrastructure layer; repositories map them to domain types.
package models

// All returns every model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&SessionModel{},
		&PasskeyCredentialModel{},
		&CategoryModel{},
		&PhotoModel{},
	}
}
