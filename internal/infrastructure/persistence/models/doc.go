// Package models holds the gorm persistence models. Domain types stay free
// of ORM tags; each model converts with ToDomain and a ...FromDomain
// constructor. Nested value objects (checklist, installation, attachments)
// are stored as JSON columns.
package models
