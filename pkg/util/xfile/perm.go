package xfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParsePerm 解析配置面的八进制权限字符串。
//
// 接受 "640"、"0640"、"0o640" 三种写法，数字必须全部是八进制位且
// 结果不超过 0777。"999" 这类十进制误写会在这里被拒绝，而不是被
// 静默解释成别的值。
func ParsePerm(s string) (os.FileMode, error) {
	if s == "" {
		return 0, fmt.Errorf("permission is required: %w", ErrInvalidPerm)
	}
	digits := strings.TrimPrefix(s, "0o")
	v, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("permission %q is not octal: %w", s, ErrInvalidPerm)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("permission %q exceeds 0777: %w", s, ErrInvalidPerm)
	}
	return os.FileMode(v), nil
}
