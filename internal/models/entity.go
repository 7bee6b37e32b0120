package models

// EntityKind distinguishes the variants of Entity.
type EntityKind string

const (
	EntityKindUser  EntityKind = "user"
	EntityKindGroup EntityKind = "group"
)

// Entity is anything that can own an expense: an individual user or a group.
// Users and groups share one ID space, so permission checks compare EntityID
// values without caring about the variant.
type Entity interface {
	EntityID() string
	EntityKind() EntityKind
}

var (
	_ Entity = (*User)(nil)
	_ Entity = (*Group)(nil)
)
