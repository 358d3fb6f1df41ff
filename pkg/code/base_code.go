package code

// Success codes // 成功码
var (
	Success = NewSuss(200, lang{
		en:    "Success",
		zh_cn: "成功",
	})
)

// Common error codes // 通用错误码
var (
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFoundAPI = NewError(10002, lang{
		en:    "API not found",
		zh_cn: "接口不存在",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorServerInternal = NewError(10004, lang{
		en:    "Internal server error",
		zh_cn: "服务内部错误",
	})
	ErrorDBQuery = NewError(10005, lang{
		en:    "Database query error",
		zh_cn: "数据库查询错误",
	})
	ErrorNotUserAuthToken = NewError(10006, lang{
		en:    "Auth token is missing",
		zh_cn: "缺少用户认证 Token",
	})
	ErrorInvalidUserAuthToken = NewError(10007, lang{
		en:    "Auth token is invalid",
		zh_cn: "用户认证 Token 无效",
	})
)

// User error codes // 用户错误码
var (
	ErrorUserRegisterIsDisable = NewError(20001, lang{
		en:    "User registration is disabled",
		zh_cn: "用户注册已关闭",
	})
	ErrorUserAlreadyExists = NewError(20002, lang{
		en:    "User already exists",
		zh_cn: "用户已存在",
	})
	ErrorUserNotFound = NewError(20003, lang{
		en:    "User not found",
		zh_cn: "用户不存在",
	})
	ErrorUserPasswordWrong = NewError(20004, lang{
		en:    "Incorrect username or password",
		zh_cn: "用户名或密码错误",
	})
	ErrorUserPasswordNotMatch = NewError(20005, lang{
		en:    "Passwords do not match",
		zh_cn: "两次输入的密码不一致",
	})
	ErrorUserUsernameNotValid = NewError(20006, lang{
		en:    "Username format is invalid",
		zh_cn: "用户名格式无效",
	})
	ErrorUserRoleUnknown = NewError(20007, lang{
		en:    "Unknown user role",
		zh_cn: "未知的用户角色",
	})
)

// Transaction and revision error codes // 交易及修订版本错误码
var (
	ErrorTransactionNotFound = NewError(30001, lang{
		en:    "Transaction not found",
		zh_cn: "交易记录不存在",
	})
	ErrorRevisionNotFound = NewError(30002, lang{
		en:    "Transaction revision not found",
		zh_cn: "交易修订版本不存在",
	})
	ErrorPermissionDenied = NewError(30003, lang{
		en:    "Permission denied",
		zh_cn: "没有操作权限",
	})
	ErrorRevisionIsCurrent = NewError(30004, lang{
		en:    "The current revision cannot be deleted",
		zh_cn: "不能删除当前修订版本",
	})
	ErrorRevisionIsLast = NewError(30005, lang{
		en:    "The only remaining revision cannot be deleted",
		zh_cn: "不能删除仅剩的修订版本",
	})
	ErrorValidationFailed = NewError(30006, lang{
		en:    "Field validation failed",
		zh_cn: "字段校验失败",
	})
	ErrorAmountNotNumeric = NewError(30007, lang{
		en:    "Amount must be numeric",
		zh_cn: "金额必须为数字",
	})
)
