package targets

import (
	_ "embed"
	"errors"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var ErrSeriesNotFound = errors.New("series not found")

func All() Targets {
	return targets
}

type Targets []TargetInfo

// TargetInfo describes one supported chip series: the package its
// interrupt enumeration lives in and the vector names that enumeration
// defines.
type TargetInfo struct {
	Series       string   `yaml:"series"`
	Chips        []string `yaml:"chips"`
	ChipPackage  string   `yaml:"chipPackage"`
	Cpu          string   `yaml:"cpu"`
	Architecture string   `yaml:"architecture"`
	Tags         []string `yaml:"tags"`
	Interrupts   []string `yaml:"interrupts"`
}

// HasInterrupt reports whether the series defines the named device vector.
func (t TargetInfo) HasInterrupt(name string) bool {
	return slices.Contains(t.Interrupts, name)
}

// BuildTags returns the build tags implied by the series, always
// including the architecture tag.
func (t TargetInfo) BuildTags() []string {
	tags := slices.Clone(t.Tags)
	if t.Architecture != "" && !slices.Contains(tags, t.Architecture) {
		tags = append(tags, t.Architecture)
	}
	return tags
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, ErrSeriesNotFound
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, ErrSeriesNotFound
}

func init() {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
