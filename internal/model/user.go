package model

import "github.com/jollymugivara/transaction-revision-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid" form:"uid"`
	Email     string     `gorm:"column:email;not null;uniqueIndex:idx_email" json:"email" form:"email"`
	Username  string     `gorm:"column:username;not null;uniqueIndex:idx_username" json:"username" form:"username"`
	Password  string     `gorm:"column:password;not null" json:"-" form:"password"`
	Role      string     `gorm:"column:role;not null;default:viewer" json:"role" form:"role"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
