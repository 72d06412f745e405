package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runApp 以独立的输出缓冲执行一次 CLI，返回标准输出内容与错误。
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := createApp()
	var buf bytes.Buffer
	app.Writer = &buf
	err := app.Run(context.Background(), append([]string{"rollctl"}, args...))
	return buf.String(), err
}

// writeConfig 在临时目录写一份 YAML 配置并返回路径。
func writeConfig(t *testing.T, target string, extra string) string {
	t.Helper()
	dir := t.TempDir()
	content := "rotation:\n  path: " + target + "\n" + extra
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	return path
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	if err := os.WriteFile(target, []byte("x"), 0o600); err != nil {
		t.Fatalf("写目标文件失败: %v", err)
	}
	cfg := writeConfig(t, target, "  max_file_size_bytes: 1024\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"无参数显示帮助", []string{"rollctl"}, 0},
		{"check缺少配置文件", []string{"rollctl", "check"}, 2},
		{"check合法配置", []string{"rollctl", "-c", cfg, "check"}, 0},
		{"status缺少目标路径", []string{"rollctl", "status"}, 2},
		{"status正常", []string{"rollctl", "status", target}, 0},
		{"非法权限字符串", []string{"rollctl", "status", target, "--file-mode", "999"}, 1},
		{"非法命名方案", []string{"rollctl", "rotate", target, "--scheme", "bogus"}, 1},
		{"标志值解析失败", []string{"rollctl", "status", target, "--max-size", "abc"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	cfg := writeConfig(t, target,
		"  suffix_scheme: timestamp_unique\n  max_archived_files: 3\n  file_mode: \"640\"\n")

	out, err := runApp(t, "-c", cfg, "check")
	if err != nil {
		t.Fatalf("check 失败: %v", err)
	}
	if !strings.Contains(out, "配置合法") {
		t.Errorf("输出缺少合法确认: %q", out)
	}
	if !strings.Contains(out, "scheme=timestamp_unique") {
		t.Errorf("输出缺少方案字段: %q", out)
	}
	if !strings.Contains(out, "mode=640") {
		t.Errorf("输出缺少权限字段: %q", out)
	}
}

func TestCheckCommandInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, filepath.Join(dir, "app.log"), "  file_mode: \"999\"\n")

	_, err := runApp(t, "-c", cfg, "check")
	if err == nil {
		t.Fatal("非法权限应当报错")
	}
	if !strings.Contains(err.Error(), "配置非法") {
		t.Errorf("错误信息 = %q, 应包含 配置非法", err.Error())
	}
}

func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	if err := os.WriteFile(target, bytes.Repeat([]byte("a"), 64), 0o600); err != nil {
		t.Fatalf("写目标文件失败: %v", err)
	}

	out, err := runApp(t, "status", target, "--max-size", "1024")
	if err != nil {
		t.Fatalf("status 失败: %v", err)
	}
	if !strings.Contains(out, "(64 字节, 上限 1024)") {
		t.Errorf("输出缺少大小信息: %q", out)
	}
	if !strings.Contains(out, "需要轮转: false") {
		t.Errorf("未超限不应需要轮转: %q", out)
	}

	// 上限压到 32 字节后应判定需要轮转
	out, err = runApp(t, "status", target, "--max-size", "32")
	if err != nil {
		t.Fatalf("status 失败: %v", err)
	}
	if !strings.Contains(out, "需要轮转: true") {
		t.Errorf("超限应需要轮转: %q", out)
	}
}

func TestStatusCommandMissingTargetFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "ghost.log")

	out, err := runApp(t, "status", target)
	if err != nil {
		t.Fatalf("目标不存在时 status 仍应成功: %v", err)
	}
	if !strings.Contains(out, "(不存在)") {
		t.Errorf("输出缺少不存在提示: %q", out)
	}
	if !strings.Contains(out, "归档数量: 0") {
		t.Errorf("输出缺少归档数量: %q", out)
	}
}

func TestRotateCommandNumbering(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	if err := os.WriteFile(target, []byte("第一代内容"), 0o600); err != nil {
		t.Fatalf("写目标文件失败: %v", err)
	}

	out, err := runApp(t, "rotate", target)
	if err != nil {
		t.Fatalf("rotate 失败: %v", err)
	}
	if !strings.Contains(out, "轮转完成") {
		t.Errorf("输出缺少完成提示: %q", out)
	}

	archived, err := os.ReadFile(filepath.Join(dir, "app.1.log"))
	if err != nil {
		t.Fatalf("读归档失败: %v", err)
	}
	if string(archived) != "第一代内容" {
		t.Errorf("归档内容 = %q, want 第一代内容", archived)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("轮转后应重建当前文件: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("新当前文件大小 = %d, want 0", info.Size())
	}
}

func TestRotateCommandCreateNewFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	if err := os.WriteFile(target, []byte("history"), 0o600); err != nil {
		t.Fatalf("写目标文件失败: %v", err)
	}

	out, err := runApp(t, "rotate", target,
		"--strategy", "create_new_file", "--scheme", "timestamp_unique")
	if err != nil {
		t.Fatalf("rotate 失败: %v", err)
	}
	// 旧文件原地保留为历史
	if _, err := os.Stat(target); err != nil {
		t.Errorf("旧文件应原地保留: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("读目录失败: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("目录文件数 = %d, want 2 (历史 + 新当前)", len(entries))
	}
	if !strings.Contains(out, "当前文件") {
		t.Errorf("输出缺少新当前文件路径: %q", out)
	}
}

func TestFlagZeroRetentionOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	if err := os.WriteFile(target, []byte("live"), 0o600); err != nil {
		t.Fatalf("写目标文件失败: %v", err)
	}
	for i := 1; i <= 3; i++ {
		archive := filepath.Join(dir, fmt.Sprintf("app.%d.log", i))
		if err := os.WriteFile(archive, []byte("old"), 0o600); err != nil {
			t.Fatalf("写归档失败: %v", err)
		}
	}
	// 配置保留 5 份，显式传 --max-archived 0 必须覆盖而不是被当作未传
	cfg := writeConfig(t, target, "  max_archived_files: 5\n")

	if _, err := runApp(t, "-c", cfg, "rotate", target, "--max-archived", "0"); err != nil {
		t.Fatalf("rotate 失败: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("读目录失败: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "app.log" {
			t.Errorf("保留数 0 应清空全部归档, 残留: %s", e.Name())
		}
	}
}

func TestFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.log")
	if err := os.WriteFile(target, []byte("data"), 0o600); err != nil {
		t.Fatalf("写目标文件失败: %v", err)
	}
	// 配置指定时间戳方案，标志改回序号方案
	cfg := writeConfig(t, target, "  suffix_scheme: timestamp_unique\n")

	if _, err := runApp(t, "-c", cfg, "rotate", target, "--scheme", "numbering"); err != nil {
		t.Fatalf("rotate 失败: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "app.1.log")); err != nil {
		t.Errorf("标志应覆盖配置产生序号归档: %v", err)
	}
}
