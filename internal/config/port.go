package config

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// Port accepts both string and integer values in config files.
type Port string

func (p Port) String() string {
	return string(p)
}

// Validate checks that the port is a number in 0-65535. Zero asks the kernel
// for a free port.
func (p Port) Validate() error {
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return fmt.Errorf("port %q is not a number", string(p))
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port %d is out of range", n)
	}
	return nil
}

func PortDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if t != reflect.TypeOf(Port("")) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return Port(v), nil
		case int:
			return Port(strconv.Itoa(v)), nil
		case int64:
			return Port(strconv.FormatInt(v, 10)), nil
		case float64:
			// JSON numbers arrive as float64.
			if v == float64(int(v)) {
				return Port(strconv.Itoa(int(v))), nil
			}
			return nil, fmt.Errorf("port must be an integer, got float: %v", v)
		default:
			return nil, fmt.Errorf("port must be a string or integer, got %T: %v", data, data)
		}
	}
}
