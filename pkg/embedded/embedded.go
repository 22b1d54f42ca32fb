// Package embedded 提供嵌入资源的统一访问接口
//
// 默认花园内容嵌入在本包的 data/ 目录中，路径以 "data/" 开头的文件从嵌入资源读取，
// 其他路径按普通文件系统路径读取（用于玩家自定义内容和测试临时文件）。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data
var defaultDataFS embed.FS

// DefaultGardenPath 默认花园内容文件路径
const DefaultGardenPath = "data/garden.yaml"

var dataFS fs.FS = defaultDataFS

// Init 替换嵌入的数据文件系统
// 传入 nil 时恢复为编译期嵌入的默认内容
func Init(data fs.FS) {
	if data == nil {
		dataFS = defaultDataFS
		return
	}
	dataFS = data
}

// normalize 标准化路径分隔符并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// IsEmbeddedPath 判断路径是否指向嵌入资源
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), "data/")
}

// ReadFile 读取文件内容
// "data/" 前缀的路径从嵌入资源读取，其余从磁盘读取
func ReadFile(path string) ([]byte, error) {
	if IsEmbeddedPath(path) {
		data, err := fs.ReadFile(dataFS, normalize(path))
		if err != nil {
			return nil, fmt.Errorf("embedded resource %s: %w", path, err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if IsEmbeddedPath(path) {
		_, err := fs.Stat(dataFS, normalize(path))
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
