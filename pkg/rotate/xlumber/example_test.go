package xlumber_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/rollkit/pkg/rotate/xlumber"
)

func ExampleNew() {
	tmpDir, err := os.MkdirTemp("", "xlumber-example-*")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	filename := filepath.Join(tmpDir, "app.log")

	r, err := xlumber.New(filename,
		xlumber.WithMaxSize(100),   // 100MB 触发轮转
		xlumber.WithMaxBackups(7),  // 保留 7 个备份
		xlumber.WithMaxAge(30),     // 保留 30 天
		xlumber.WithCompress(true), // 压缩备份
	)
	if err != nil {
		fmt.Println("创建失败:", err)
		return
	}
	defer r.Close()

	_, _ = r.Write([]byte("hello xlumber\n"))
	fmt.Println("写入成功")
	// Output: 写入成功
}
