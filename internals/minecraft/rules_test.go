package minecraft

import (
	"testing"

	"github.com/minepkg/assetguard/internals/platform"
)

func TestValidateRules(t *testing.T) {
	type args struct {
		rules   []Rule
		natives map[string]string
		os      platform.OS
	}
	orderSensitive := []Rule{
		{Action: "disallow", OS: &OS{Name: "osx"}},
		{Action: "allow", OS: &OS{Name: "linux"}},
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "no rules",
			args: args{os: platform.Linux},
			want: true,
		},
		{
			name: "no rules with natives for os",
			args: args{
				natives: map[string]string{"linux": "natives-linux"},
				os:      platform.Linux,
			},
			want: true,
		},
		{
			name: "no rules without natives for os",
			args: args{
				natives: map[string]string{"windows": "natives-windows"},
				os:      platform.Linux,
			},
			want: false,
		},
		{
			name: "allow os",
			args: args{
				rules: []Rule{{Action: "allow", OS: &OS{Name: "linux"}}},
				os:    platform.Linux,
			},
			want: true,
		},
		{
			name: "allow other os",
			args: args{
				rules: []Rule{{Action: "allow", OS: &OS{Name: "osx"}}},
				os:    platform.Linux,
			},
			want: false,
		},
		{
			name: "disallow os",
			args: args{
				rules: []Rule{{Action: "allow"}, {Action: "disallow", OS: &OS{Name: "osx"}}},
				os:    platform.OSX,
			},
			want: false,
		},
		{
			name: "disallow other os",
			args: args{
				rules: []Rule{{Action: "allow"}, {Action: "disallow", OS: &OS{Name: "osx"}}},
				os:    platform.Windows,
			},
			want: true,
		},
		{
			name: "order sensitive on first os",
			args: args{rules: orderSensitive, os: platform.OSX},
			want: false,
		},
		{
			name: "order sensitive on second os",
			args: args{rules: orderSensitive, os: platform.Linux},
			want: true,
		},
		{
			name: "no rule decides",
			args: args{rules: []Rule{{Action: "allow"}}, os: platform.Linux},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateRules(tt.args.rules, tt.args.natives, tt.args.os); got != tt.want {
				t.Errorf("ValidateRules() = %v, want %v", got, tt.want)
			}
		})
	}
}
