package release

import (
	"context"
	"errors"
	"testing"
)

func stubGH(lookErr error, out []byte, runErr error) *GHClient {
	return &GHClient{
		lookPath: func(file string) (string, error) {
			if lookErr != nil {
				return "", lookErr
			}
			return "/usr/bin/" + file, nil
		},
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return out, runErr
		},
	}
}

func TestGHClientInstalled(t *testing.T) {
	if !stubGH(nil, nil, nil).Installed() {
		t.Error("expected installed")
	}
	if stubGH(errors.New("not found"), nil, nil).Installed() {
		t.Error("expected not installed")
	}
}

func TestGHClientAuthenticated(t *testing.T) {
	ctx := context.Background()
	if !stubGH(nil, nil, nil).Authenticated(ctx) {
		t.Error("expected authenticated")
	}
	if stubGH(nil, nil, errors.New("exit 1")).Authenticated(ctx) {
		t.Error("expected not authenticated")
	}
}

func TestGHClientLatestTag(t *testing.T) {
	tests := []struct {
		name    string
		out     []byte
		runErr  error
		want    string
		wantErr bool
	}{
		{
			name: "valid_output",
			out:  []byte(`{"tagName": "v1.6.1"}`),
			want: "v1.6.1",
		},
		{
			name:    "command_failed",
			runErr:  errors.New("exit 1"),
			wantErr: true,
		},
		{
			name:    "malformed_json",
			out:     []byte("not json"),
			wantErr: true,
		},
		{
			name:    "empty_tag",
			out:     []byte(`{"tagName": ""}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := stubGH(nil, tt.out, tt.runErr)
			tag, err := gh.LatestTag(context.Background(), DefaultRepo)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tag != tt.want {
				t.Errorf("tag = %q, want %q", tag, tt.want)
			}
		})
	}
}

func TestGHClientDownload(t *testing.T) {
	var gotArgs []string
	gh := &GHClient{
		lookPath: func(string) (string, error) { return "gh", nil },
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = args
			return nil, nil
		},
	}

	err := gh.Download(context.Background(), DefaultRepo, "v1.6.1", "tobycli_Linux_x86_64.tar.gz", "/tmp/scratch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"release", "download", "v1.6.1", "--repo", DefaultRepo, "--pattern", "tobycli_Linux_x86_64.tar.gz", "--dir", "/tmp/scratch"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, gotArgs[i], want[i])
		}
	}
}
