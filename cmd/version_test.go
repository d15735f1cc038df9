package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	tests := []struct {
		name    string
		stamped string
		info    *debug.BuildInfo
		want    string
	}{
		{"no build info", "(devel)", nil, "identitygift (devel)\n"},
		{"stamped wins", "v0.3.0", &debug.BuildInfo{GoVersion: "go1.25.6", Main: debug.Module{Version: "v0.2.0"}}, "identitygift v0.3.0 (go1.25.6)\n"},
		{"module version", "(devel)", &debug.BuildInfo{GoVersion: "go1.25.6", Main: debug.Module{Version: "v0.2.0"}}, "identitygift v0.2.0 (go1.25.6)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			printVersion(&b, tt.stamped, tt.info)
			if b.String() != tt.want {
				t.Errorf("got %q, want %q", b.String(), tt.want)
			}
		})
	}
}
