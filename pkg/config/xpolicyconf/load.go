package xpolicyconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
)

// Format 定义策略文件格式。
type Format string

// 支持的策略文件格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// koanf 配置键分隔符与结构体标签。
const (
	koanfDelim = "."
	koanfTag   = "koanf"
)

// Load 从文件加载采样策略
//
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
// 返回的策略已通过 xpolicy.Validate，可直接安装到决策器。
func Load(path string) (*xpolicy.Policy, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载采样策略
//
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 返回的策略已通过 xpolicy.Validate。
func LoadBytes(data []byte, format Format) (*xpolicy.Policy, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, ErrUnsupportedFormat
	}

	k := koanf.New(koanfDelim)
	if err := loadData(k, data, format); err != nil {
		return nil, err
	}

	var spec fileSpec
	if err := k.UnmarshalWithConf("", &spec, koanf.UnmarshalConf{Tag: koanfTag}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}

	policy, err := spec.compile()
	if err != nil {
		return nil, err
	}

	// 校验先于安装：非法策略在加载阶段即被拒绝
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

// loadData 将数据按格式加载到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}

// detectFormat 根据文件扩展名检测格式。
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
