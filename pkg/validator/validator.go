// Package validator wraps the gin binding validator and registers
// custom validation rules.
// Package validator 封装 gin 绑定验证器并注册自定义校验规则
package validator

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// CustomValidator implements binding.StructValidator with lazy init
// CustomValidator 实现 binding.StructValidator，延迟初始化
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

// NewCustomValidator 创建自定义验证器实例
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyInit()
	return v.validate.Struct(obj)
}

// Engine 返回底层验证引擎
func (v *CustomValidator) Engine() interface{} {
	v.lazyInit()
	return v.validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

// validRoles 合法角色名集合
var validRoles = map[string]struct{}{
	"admin":  {},
	"editor": {},
	"viewer": {},
}

// RegisterCustom registers custom validation rules on the active
// binding validator. Must be called after binding.Validator is set.
// RegisterCustom 在当前绑定验证器上注册自定义校验规则。
// 必须在设置 binding.Validator 之后调用。
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}

	// role 校验字段值是否为合法角色名
	_ = validate.RegisterValidation("role", func(fl val.FieldLevel) bool {
		_, ok := validRoles[fl.Field().String()]
		return ok
	})
}
