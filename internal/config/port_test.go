package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortDecodeHook(t *testing.T) {
	decodeHook := PortDecodeHook()
	portType := reflect.TypeOf(Port(""))

	tests := []struct {
		name     string
		data     any
		expected Port
		errMsg   string
	}{
		{name: "string port", data: "8080", expected: Port("8080")},
		{name: "integer port", data: 8080, expected: Port("8080")},
		{name: "int64 port", data: int64(8080), expected: Port("8080")},
		{name: "float64 port that is integer", data: 8080.0, expected: Port("8080")},
		{name: "float64 port that is not integer", data: 8080.5, errMsg: "port must be an integer, got float: 8080.5"},
		{name: "boolean data", data: true, errMsg: "port must be a string or integer, got bool: true"},
		{name: "slice data", data: []string{"8080"}, errMsg: "port must be a string or integer, got []string: [8080]"},
		{name: "zero integer", data: 0, expected: Port("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := decodeHook(reflect.TypeOf(tt.data), portType, tt.data)
			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPortDecodeHook_NonPortType(t *testing.T) {
	result, err := PortDecodeHook()(reflect.TypeOf(""), reflect.TypeOf(""), "8080")
	require.NoError(t, err)
	assert.Equal(t, "8080", result)
}

func TestPort_Validate(t *testing.T) {
	tests := []struct {
		port    Port
		wantErr bool
	}{
		{port: "8000"},
		{port: "0"},
		{port: "65535"},
		{port: "65536", wantErr: true},
		{port: "-1", wantErr: true},
		{port: "http", wantErr: true},
		{port: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.port), func(t *testing.T) {
			err := tt.port.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
