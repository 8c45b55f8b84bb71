package errors

import "errors"

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// ========== 业务错误定义 ==========

// 授权失败都是请求级的终态错误：不重试、不降级为默认身份或默认租户
var (
	// ErrUnauthenticated 未登录或会话无效
	ErrUnauthenticated = errors.New("未登录或会话已失效")

	// ErrNoTenantAccess 已登录但没有可用的租户上下文
	ErrNoTenantAccess = errors.New("租户不存在或无访问权限")

	// ErrAdminRequired 已登录但缺少管理员权限
	ErrAdminRequired = errors.New("需要管理员权限")

	// ErrNotFound 记录在当前租户范围内不存在
	// 跨租户的记录同样返回该错误，调用方无法区分"不存在"和"在别的租户"
	ErrNotFound = errors.New("记录不存在")

	// ErrConflict 唯一性冲突（slug、邮箱、用户名、成员关系）或删除前置条件不满足
	ErrConflict = errors.New("资源冲突")

	// ErrValidation 输入校验失败，尚未触达存储层
	ErrValidation = errors.New("参数校验失败")
)

// CodeOf 业务错误到错误码的映射
func CodeOf(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthorized
	case errors.Is(err, ErrNoTenantAccess), errors.Is(err, ErrAdminRequired):
		return CodeForbidden
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrValidation):
		return CodeInvalidParam
	default:
		return CodeServerError
	}
}
