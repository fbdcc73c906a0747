package build_test

import (
	"testing"

	"github.com/HafizAhmed223/backend/internal/build"
)

func TestFullVersion(t *testing.T) {
	defaultVersion := build.Version
	defaultCommit := build.Commit
	defer func() {
		build.Version = defaultVersion
		build.Commit = defaultCommit
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{
			name:    "default values",
			version: "dev",
			commit:  "none",
			want:    "dev+none",
		},
		{
			name:    "tagged release",
			version: "0.3.1",
			commit:  "f3a91c2",
			want:    "0.3.1+f3a91c2",
		},
		{
			name:    "prerelease with full commit hash",
			version: "0.4.0-rc1",
			commit:  "2b7e151628aed2a6abf7158809cf4f3c762e7160",
			want:    "0.4.0-rc1+2b7e151628aed2a6abf7158809cf4f3c762e7160",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build.Version = tt.version
			build.Commit = tt.commit

			got := build.FullVersion()
			if got != tt.want {
				t.Errorf("FullVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
