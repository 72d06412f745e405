package xengine_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/rollkit/pkg/rotate/xengine"
	"github.com/omeyang/rollkit/pkg/rotate/xscheme"
)

// nopWriter 演示用写入器：重开即重新创建空文件。
type nopWriter struct{}

func (nopWriter) Reopen(path string) error {
	return os.WriteFile(path, nil, 0o600)
}

func ExampleNew() {
	dir, _ := os.MkdirTemp("", "xengine-example")
	defer os.RemoveAll(dir)
	target := filepath.Join(dir, "app.log")

	cfg := xengine.Config{
		Scheme:      xscheme.SchemeNumbering,
		Strategy:    xengine.StrategyArchiveInPlace,
		MaxFileSize: 64,
		MaxArchived: 3,
	}

	e, err := xengine.New(target, nopWriter{}, cfg)
	if err != nil {
		fmt.Println("new:", err)
		return
	}

	// 写满目标文件后检查轮转
	_ = os.WriteFile(target, make([]byte, 65), 0o600)
	fmt.Println("rotated:", e.CheckAndRotate())

	_, err = os.Stat(filepath.Join(dir, "app.1.log"))
	fmt.Println("archived exists:", err == nil)

	// Output:
	// rotated: true
	// archived exists: true
}

func ExampleParseStrategy() {
	s, err := xengine.ParseStrategy("create_new_file")
	fmt.Println(s, err)

	_, err = xengine.ParseStrategy("weekly")
	fmt.Println(err != nil)

	// Output:
	// create_new_file <nil>
	// true
}

func ExampleConfig_Validate() {
	cfg := xengine.DefaultConfig()
	fmt.Println("default:", cfg.Validate())

	cfg.MaxFileSize = 0
	fmt.Println("invalid:", cfg.Validate() != nil)

	// Output:
	// default: <nil>
	// invalid: true
}
