package models

import (
	"strings"

	"gorm.io/gorm"
)

// 权限常量
const (
	AuthorityUser  = "USER"
	AuthorityAdmin = "ADMIN"
)

// Account 账户。Password 只保存 Argon2id 哈希，Authorities 为空格分隔的角色集合。
type Account struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `json:"-"`
	Authorities string `gorm:"not null;default:USER"`

	Albums []*Album `gorm:"foreignKey:AccountID"`
}

// HasAuthority reports whether the account carries the given role token.
func (a *Account) HasAuthority(authority string) bool {
	for _, token := range strings.Fields(a.Authorities) {
		if token == authority {
			return true
		}
	}
	return false
}
