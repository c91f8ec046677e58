package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	// MinGreenFloor 最短绿灯时长下限
	MinGreenFloor = 5

	defaultSteps            = 120
	defaultArrivalIntensity = 0.7
	defaultCrossingRate     = 0.2
	defaultSaturationFlow   = 5
	defaultCycleLength      = 90
	defaultGreenBand        = 30
)

var (
	ErrInvalidLayout  = errors.New("config: invalid layout")
	ErrInvalidControl = errors.New("config: invalid control")
)

// Load 从文件加载配置
// 功能：读取YAML配置文件，应用默认值并校验
// 参数：path-配置文件路径
// 返回：配置对象和错误信息
// 说明：使用UnmarshalStrict，未知字段视为错误
func Load(path string) (Config, error) {
	var c Config
	file, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config file load err: %w", err)
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		return c, fmt.Errorf("config file load err: %w", err)
	}
	c.Control.SetDefaults()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// SetDefaults 填充控制配置默认值
// 功能：对未设置的控制参数应用默认值
func (c *Control) SetDefaults() {
	if c.Step.Total == 0 {
		c.Step.Total = defaultSteps
	}
	if c.ArrivalIntensity == 0 {
		c.ArrivalIntensity = defaultArrivalIntensity
	}
	if c.CrossingRate == 0 {
		c.CrossingRate = defaultCrossingRate
	}
	if c.SaturationFlow == 0 {
		c.SaturationFlow = defaultSaturationFlow
	}
	if c.Corridor != nil {
		if c.Corridor.CycleLength == 0 {
			c.Corridor.CycleLength = defaultCycleLength
		}
		if c.Corridor.GreenBand == 0 {
			c.Corridor.GreenBand = defaultGreenBand
		}
	}
}

// Validate 校验布局配置
// 功能：检查相位定义是否满足仿真核心的前置条件
// 返回：错误信息，配置合法时为nil
// 说明：核心假定布局已通过校验，所有非法布局必须在此处拒绝
func (l LayoutConfig) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: empty layout id", ErrInvalidLayout)
	}
	if len(l.Phases) == 0 {
		return fmt.Errorf("%w: layout %s has no phases", ErrInvalidLayout, l.ID)
	}
	names := make(map[string]struct{}, len(l.Phases))
	for _, p := range l.Phases {
		if p.Name == "" {
			return fmt.Errorf("%w: layout %s has unnamed phase", ErrInvalidLayout, l.ID)
		}
		if _, ok := names[p.Name]; ok {
			return fmt.Errorf("%w: layout %s has duplicated phase %s", ErrInvalidLayout, l.ID, p.Name)
		}
		names[p.Name] = struct{}{}
		if len(p.Lanes) == 0 {
			return fmt.Errorf("%w: phase %s of layout %s has no lanes", ErrInvalidLayout, p.Name, l.ID)
		}
		if p.MinGreen < MinGreenFloor || p.MaxGreen < MinGreenFloor {
			return fmt.Errorf(
				"%w: phase %s of layout %s green durations must be >= %d",
				ErrInvalidLayout, p.Name, l.ID, MinGreenFloor,
			)
		}
		if p.MinGreen > p.MaxGreen {
			return fmt.Errorf(
				"%w: phase %s of layout %s has min green %d > max green %d",
				ErrInvalidLayout, p.Name, l.ID, p.MinGreen, p.MaxGreen,
			)
		}
	}
	return nil
}

// Validate 校验控制配置
// 功能：检查运行参数的取值范围
// 返回：错误信息，配置合法时为nil
func (c Control) Validate() error {
	if c.Step.Total < 0 {
		return fmt.Errorf("%w: step total %d < 0", ErrInvalidControl, c.Step.Total)
	}
	if c.ArrivalIntensity < 0 {
		return fmt.Errorf("%w: arrival intensity %f < 0", ErrInvalidControl, c.ArrivalIntensity)
	}
	if c.CrossingRate < 0 || c.CrossingRate > 1 {
		return fmt.Errorf("%w: crossing rate %f not in [0, 1]", ErrInvalidControl, c.CrossingRate)
	}
	if c.SaturationFlow <= 0 {
		return fmt.Errorf("%w: saturation flow %d <= 0", ErrInvalidControl, c.SaturationFlow)
	}
	if c.Corridor != nil {
		if len(c.Corridor.Lanes) == 0 {
			return fmt.Errorf("%w: corridor has no lanes", ErrInvalidControl)
		}
		if c.Corridor.CycleLength <= 0 || c.Corridor.GreenBand <= 0 {
			return fmt.Errorf(
				"%w: corridor cycle %d and band %d must be > 0",
				ErrInvalidControl, c.Corridor.CycleLength, c.Corridor.GreenBand,
			)
		}
		if c.Corridor.GreenBand > c.Corridor.CycleLength {
			return fmt.Errorf(
				"%w: corridor band %d > cycle %d",
				ErrInvalidControl, c.Corridor.GreenBand, c.Corridor.CycleLength,
			)
		}
	}
	return nil
}

// Validate 校验整体配置
// 功能：依次校验所有布局与控制配置
// 返回：错误信息，配置合法时为nil
func (c Config) Validate() error {
	if len(c.Layouts) == 0 {
		return fmt.Errorf("%w: no layouts", ErrInvalidLayout)
	}
	ids := make(map[string]struct{}, len(c.Layouts))
	for _, l := range c.Layouts {
		if _, ok := ids[l.ID]; ok {
			return fmt.Errorf("%w: duplicated layout id %s", ErrInvalidLayout, l.ID)
		}
		ids[l.ID] = struct{}{}
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return c.Control.Validate()
}
