// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// User 对应于数据库中的 'users' 表。
type User struct {
	// ID 是用户的唯一标识符，作为主键。
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// Username 是用户的登录名，全局唯一。
	Username string `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	// Password 存储 bcrypt 哈希后的密码，永不外发。
	Password string `gorm:"type:varchar(100);not null" json:"-"`
	// Role 为 'admin' 或 'user'，admin 可以清空知识库。
	Role string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// CreatedAt 由 GORM 自动管理，记录创建时间。
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	// LastLoginAt 记录最后一次登录时间，可为 NULL。
	LastLoginAt *time.Time `gorm:"default:null" json:"lastLoginAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}

// IsAdmin 判断用户是否为管理员。
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
