package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCommitRequest(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		all     bool
		message string
		wantErr string
	}{
		{
			name:    "files selected",
			files:   []string{"a.go"},
			message: "msg",
		},
		{
			name:    "all flag without files",
			all:     true,
			message: "msg",
		},
		{
			name:    "empty selection rejected",
			message: "msg",
			wantErr: "no files selected",
		},
		{
			name:    "missing message rejected",
			files:   []string{"a.go"},
			wantErr: "commit message is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCommitRequest(tt.files, tt.all, tt.message)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
