package builder

import (
	"fmt"
	"os"
)

type Env map[string]string

// Environment is the process environment the package loader runs with.
// Generation always parses on the host toolchain; target selection
// happens through build tags rather than GOOS/GOARCH.
func Environment() Env {
	return map[string]string{
		"GOROOT":  os.Getenv("GOROOT"),
		"GOPATH":  os.Getenv("GOPATH"),
		"GOCACHE": os.Getenv("GOCACHE"),
		"GOFLAGS": getenv("GOFLAGS", ""),
	}
}

func (e Env) Print() {
	for k, v := range e {
		fmt.Printf("set %s=%s\n", k, v)
	}
}

func (e Env) Value(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return ""
}

func (e Env) List() []string {
	result := os.Environ()
	for key, value := range e {
		if len(value) > 0 {
			result = append(result, fmt.Sprintf("%s=%s", key, value))
		}
	}
	return result
}

func getenv(key, _default string) (value string) {
	value = os.Getenv(key)
	if len(value) == 0 {
		value = _default
	}
	return value
}
