// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // User related config // 用户相关配置
	App  AppServiceConfig  // App related config // 应用相关配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool   // Whether registration is enabled // 注册是否启用
	DefaultRole      string // Role assigned when none is requested // 未指定角色时的默认角色
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	// StrictAmountCheck rejects amounts that do not parse as a number.
	// Off by default: the amount stays opaque text.
	// StrictAmountCheck 拒绝无法解析为数字的金额。
	// 默认关闭：金额保持为不透明文本。
	StrictAmountCheck bool
	DefaultPageSize   int // Default page size // 默认页面大小
	MaxPageSize       int // Max page size // 最大页面大小
}
