package xscheme

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheme 归档文件名后缀方案。
type Scheme string

// 支持的命名方案。
const (
	// SchemeNumbering 序号方案："app.log" 的代数 3 归档为 "app.3.log"。
	SchemeNumbering Scheme = "numbering"

	// SchemeTimestampUnique 时间戳方案："app.log" 归档为
	// "app.log.20250101T120000_<uuid>"。
	SchemeTimestampUnique Scheme = "timestamp_unique"
)

// StampLayout 时间戳标记的格式。
//
// 秒级精度即可：同一秒内的多次轮转由 uuid 后缀保证唯一性。
// 格式中不含 '.' 和 '_'，避免与标记分隔符混淆。
const StampLayout = "20060102T150405"

// stampLen 格式化后时间戳的固定长度。
const stampLen = len(StampLayout)

// ParseScheme 解析配置面使用的方案标识（"numbering" / "timestamp_unique"）。
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeNumbering, SchemeTimestampUnique:
		return Scheme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
}

// NewUniqueID 生成时间戳方案使用的唯一 id。
func NewUniqueID() string {
	return uuid.NewString()
}

// ArchiveName 返回序号方案下目标文件指定代数的归档路径。
//
// 代数插入在扩展名之前："app.log" 的代数 2 为 "app.2.log"；
// 无扩展名时直接追加："app" 的代数 2 为 "app.2"。
// 代数必须 >= 1，代数 1 表示最近一次被替换下来的文件。
func ArchiveName(target string, generation int) (string, error) {
	if generation < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidGeneration, generation)
	}
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"."+strconv.Itoa(generation)+ext), nil
}

// StampedArchiveName 返回时间戳方案下的归档路径。
//
// 标记追加在完整文件名（含扩展名）之后：
// "app.log" -> "app.log.20250101T120000_<id>"。
func StampedArchiveName(target string, at time.Time, id string) string {
	return target + "." + at.Format(StampLayout) + "_" + id
}

// NumberedCurrentName 返回"新建文件"策略 + 序号方案下的新当前文件路径。
//
// 固定指向代数 1（"app.1.log"），不递增计数器：连续多次轮转会反复
// 复用并覆盖同一个代数 1 文件名。这是参考实现的既有行为，按原样保留，
// 调用方应知晓其覆盖风险（见 xengine 文档）。
func NumberedCurrentName(target string) string {
	name, _ := ArchiveName(target, 1)
	return name
}

// StampedCurrentName 返回"新建文件"策略 + 时间戳方案下的新当前文件路径。
//
// 标记插入在扩展名之前且以下划线连接：
// "app.log" -> "app_20250101T120000_<id>.log"，每次轮转产生全新名称。
func StampedCurrentName(target string, at time.Time, id string) string {
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+at.Format(StampLayout)+"_"+id+ext)
}

// BareName 反复剥离文件名中所有可识别的轮转标记，返回还原后的裸名称。
//
// 可识别的标记（与生成函数一一对应）：
//   - 扩展名前的 ".<数字>"（序号归档与序号新建文件）
//   - 完整名称后的 ".<时间戳>_<uuid>"（时间戳归档）
//   - 扩展名前的 "_<时间戳>_<uuid>"（时间戳新建文件）
//
// 入参与返回值都是不含目录的文件名。
func BareName(name string) string {
	for {
		stripped, ok := stripOnce(name)
		if !ok {
			return name
		}
		name = stripped
	}
}

// IsArchiveOf 判断候选文件是否为目标文件的历史代（归档或旧的当前文件）。
//
// 判定规则：候选与目标不是同一路径，且剥离全部轮转标记后的裸名称
// 恰好等于目标的文件名。只比较文件名部分，目录归属由调用方保证
// （扫描器只会在目标所在目录内枚举候选）。
func IsArchiveOf(target, candidate string) bool {
	if candidate == target {
		return false
	}
	tbase := filepath.Base(target)
	cbase := filepath.Base(candidate)
	if cbase == tbase {
		return false
	}
	return BareName(cbase) == tbase
}

// stripOnce 剥离一层轮转标记。未识别到标记时返回 (原名, false)。
func stripOnce(name string) (string, bool) {
	// 完整名称后的 ".<时间戳>_<uuid>"
	if rest, ok := trimStampID(name, '.'); ok {
		return rest, true
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	// 扩展名前的 "_<时间戳>_<uuid>"
	if rest, ok := trimStampID(stem, '_'); ok {
		return rest + ext, true
	}

	// 扩展名前的 ".<数字>"
	genExt := filepath.Ext(stem)
	if len(genExt) >= 2 && isDigits(genExt[1:]) {
		return strings.TrimSuffix(stem, genExt) + ext, true
	}

	return name, false
}

// trimStampID 尝试剥离 s 末尾的 "<sep><时间戳>_<uuid>" 标记，
// 返回剥离后的前缀。时间戳与 uuid 都必须严格可解析，避免误伤
// 恰好形似的普通文件名。
func trimStampID(s string, sep byte) (string, bool) {
	i := strings.LastIndexByte(s, '_')
	if i < 0 {
		return "", false
	}
	if _, err := uuid.Parse(s[i+1:]); err != nil {
		return "", false
	}
	head := s[:i]
	if len(head) < stampLen+1 {
		return "", false
	}
	stamp := head[len(head)-stampLen:]
	if _, err := time.Parse(StampLayout, stamp); err != nil {
		return "", false
	}
	if head[len(head)-stampLen-1] != sep {
		return "", false
	}
	return head[:len(head)-stampLen-1], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
