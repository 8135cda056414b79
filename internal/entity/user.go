package entity

import "github.com/nasalinha/backend/pkg/enum"

type GlobalRole string

var (
	RoleAdmin   = enum.New(GlobalRole("ADMIN"))
	RoleMember  = enum.New(GlobalRole("MEMBER"))
	RoleTrainee = enum.New(GlobalRole("TRAINEE"))
)

var GlobalAdminRoles = []GlobalRole{RoleAdmin}

type User struct {
	Base
	Name     string
	Email    string `gorm:"unique;not null"`
	Password string
	Role     GlobalRole `gorm:"default:MEMBER"`
	IsActive bool       `gorm:"default:true"`
}
