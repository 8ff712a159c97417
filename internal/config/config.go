package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type RGB struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

type Cylinder struct {
	Radius        float64 `yaml:"radius"`
	EllipseScaleX float64 `yaml:"ellipse_scale_x"`
	Direction     float64 `yaml:"direction"` // +1 | -1
	TextSpeed     float64 `yaml:"text_speed"`
	Dim           RGB     `yaml:"dim_color"`
	Active        RGB     `yaml:"active_color"`
}

type Scroll struct {
	Start     float64 `yaml:"start"`
	End       float64 `yaml:"end"`
	Smoothing float64 `yaml:"smoothing"` // seconds; 0 = direct binding
}

type Config struct {
	Driver string `yaml:"driver"` // "ws" | "window" | "fake"
	Addr   string `yaml:"addr"`
	FPS    int    `yaml:"fps"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	Scene      string  `yaml:"scene"`
	Preset     string  `yaml:"preset"`
	Brightness float64 `yaml:"brightness"`
	FontSize   float64 `yaml:"font_size"`

	Texts     []string `yaml:"texts"`
	AssetRoot string   `yaml:"asset_root"`
	Images    []string `yaml:"images"`

	Cylinder Cylinder `yaml:"cylinder"`
	Scroll   Scroll   `yaml:"scroll"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
