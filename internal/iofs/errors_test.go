package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
	}{
		{"dir", HomeDirError("/test/cache", orig),
			errcode.HomeDirError, "entres directory /test/cache"},
		{"write", WriteConfigError("/test/config.yaml", orig),
			errcode.WriteConfigError, "write default config /test/config.yaml"},
		{"read", ReadConfigError("/test/config.yaml", orig),
			errcode.ReadConfigError, "load config /test/config.yaml"},
	}

	for _, tt := range tests {
		gnErr, ok := tt.err.(*gn.Error)
		require.True(t, ok, tt.msg)
		assert.Equal(t, tt.code, gnErr.Code, tt.msg)
		assert.NotEmpty(t, gnErr.Msg, tt.msg)
		require.Len(t, gnErr.Vars, 1, tt.msg)
		assert.ErrorIs(t, gnErr.Err, orig, tt.msg)
		assert.Contains(t, gnErr.Err.Error(), tt.text, tt.msg)
		assert.Contains(t, gnErr.Err.Error(), "TestErrors", tt.msg)
	}
}
