package domain

import "time"

// User 用户领域模型
type User struct {
	UID       int64
	Email     string
	Username  string
	// Password bcrypt 哈希
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
