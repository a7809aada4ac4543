package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func newTestTree(t *testing.T) afero.Fs {
	t.Helper()

	// /home/
	//   notes.txt
	//   zeta.md
	//   .profile
	//   projects/
	//     app/
	//   .cache/
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{"/home/projects/app", "/home/.cache"} {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
	}
	for _, f := range []string{"/home/notes.txt", "/home/zeta.md", "/home/.profile"} {
		if err := afero.WriteFile(fsys, f, []byte("test content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	return fsys
}

func TestListDirectory(t *testing.T) {
	fsys := newTestTree(t)

	tests := []struct {
		name      string
		opts      ListOptions
		wantNames []string
	}{
		{
			name:      "hidden entries skipped",
			opts:      ListOptions{},
			wantNames: []string{"notes.txt", "projects", "zeta.md"},
		},
		{
			name:      "hidden entries shown",
			opts:      ListOptions{ShowHidden: true},
			wantNames: []string{".cache", ".profile", "notes.txt", "projects", "zeta.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := ListDirectory(fsys, "/home", tt.opts)
			if err != nil {
				t.Fatalf("ListDirectory() error = %v", err)
			}

			if got := entryNames(listing); !reflect.DeepEqual(got, tt.wantNames) {
				t.Errorf("ListDirectory() names = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestListDirectory_NotRecursive(t *testing.T) {
	fsys := newTestTree(t)

	listing, err := ListDirectory(fsys, "/home/projects", ListOptions{})
	if err != nil {
		t.Fatalf("ListDirectory() error = %v", err)
	}

	if got := entryNames(listing); !reflect.DeepEqual(got, []string{"app"}) {
		t.Errorf("ListDirectory() names = %v, want [app]", got)
	}
}

func TestListDirectory_Errors(t *testing.T) {
	fsys := newTestTree(t)

	_, err := ListDirectory(fsys, "/nonexistent", ListOptions{})
	if err == nil {
		t.Fatal("ListDirectory() expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ListDirectory() error = %v, want os.ErrNotExist", err)
	}
}

func TestResolveDirectory(t *testing.T) {
	fsys := newTestTree(t)

	tests := []struct {
		name       string
		cwd        string
		target     string
		showHidden bool
		want       string
		wantErr    error
	}{
		{name: "child directory", cwd: "/home", target: "projects", want: "/home/projects"},
		{name: "child with trailing slash", cwd: "/home", target: "projects/", want: "/home/projects"},
		{name: "parent", cwd: "/home/projects", target: "..", want: "/home"},
		{name: "parent of root stays at root", cwd: "/", target: "..", want: "/"},
		{name: "dot stays", cwd: "/home", target: ".", want: "/home"},
		{name: "absolute path", cwd: "/home/projects/app", target: "/home", want: "/home"},
		{name: "absolute path cleaned", cwd: "/", target: "/home/projects/../projects/app/", want: "/home/projects/app"},
		{name: "hidden child while hidden", cwd: "/home", target: ".cache", wantErr: ErrNotFound},
		{name: "hidden child while shown", cwd: "/home", target: ".cache", showHidden: true, want: "/home/.cache"},
		{name: "file", cwd: "/home", target: "notes.txt", wantErr: ErrNotDirectory},
		{name: "nonexistent", cwd: "/home", target: "nonexistent", wantErr: ErrNotFound},
		{name: "absolute nonexistent", cwd: "/home", target: "/nope", wantErr: ErrNotFound},
		{name: "absolute file", cwd: "/", target: "/home/zeta.md", wantErr: ErrNotDirectory},
		{name: "nested relative path", cwd: "/home", target: "projects/app", wantErr: ErrNotChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDirectory(fsys, tt.cwd, tt.target, tt.showHidden)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDirectory() error = %v, want %v", err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("ResolveDirectory() = %q on error, want empty", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDirectory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveDirectory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDirectory_OsFilesystem(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, "child"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	got, err := ResolveDirectory(afero.NewOsFs(), tmpDir, "child", false)
	if err != nil {
		t.Fatalf("ResolveDirectory() error = %v", err)
	}
	if want := filepath.Join(tmpDir, "child"); got != want {
		t.Errorf("ResolveDirectory() = %q, want %q", got, want)
	}
}

func entryNames(l *Listing) []string {
	names := make([]string, len(l.Entries))
	for i, entry := range l.Entries {
		names[i] = entry.Name()
	}
	return names
}
