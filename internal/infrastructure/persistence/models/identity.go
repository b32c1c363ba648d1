package models

import (
	"github.com/google/uuid"

	"github.com/finapp/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	FullName     string     `gorm:"type:varchar(200)"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null;default:true"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		RoleID:       m.RoleID,
		ClientID:     m.ClientID,
		Active:       m.Active,
	}
}

func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.RoleID = u.RoleID
	m.ClientID = u.ClientID
	m.Active = u.Active
}

// RoleModel is the persistence model for the Role domain entity.
type RoleModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (RoleModel) TableName() string {
	return "roles"
}

func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
	}
}

func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.Description = r.Description
}

// PermissionModel is the persistence model for the Permission grant.
type PermissionModel struct {
	BaseModel
	RoleID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_permission_grant,priority:1"`
	Resource string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_permission_grant,priority:2"`
	Action   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_permission_grant,priority:3"`
}

func (PermissionModel) TableName() string {
	return "permissions"
}

func (m *PermissionModel) ToDomain() *identity.Permission {
	return &identity.Permission{
		BaseEntity: m.BaseModel.ToDomain(),
		RoleID:     m.RoleID,
		Resource:   m.Resource,
		Action:     m.Action,
	}
}

func (m *PermissionModel) FromDomain(p *identity.Permission) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.RoleID = p.RoleID
	m.Resource = p.Resource
	m.Action = p.Action
}
