package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daytodo/internal/board"
)

func TestSQLiteSlotReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")
	s, err := Open(path, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	data, err := s.Read()
	if err != nil {
		t.Fatalf("read empty: %v", err)
	}
	if data != nil {
		t.Fatalf("read empty=%q, want nil", data)
	}

	if err := s.Write([]byte(`{"1":[]}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write([]byte(`{"2":[]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err = s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"2":[]}` {
		t.Fatalf("read=%q", data)
	}
}

func TestSQLiteSlotKeysAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	a, err := Open(path, "a")
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	if err := a.Write([]byte("alpha")); err != nil {
		t.Fatalf("write: %v", err)
	}
	a.Close()

	b, err := Open(path, "b")
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	defer b.Close()
	data, err := b.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data != nil {
		t.Fatalf("key b read %q, want nil", data)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN("file:memdb?mode=memory"); got != "file:memdb?mode=memory" {
		t.Fatalf("dsn=%q", got)
	}
	got := sqliteDSN(filepath.Join(t.TempDir(), "x.db"))
	if !strings.HasPrefix(got, "file://") || !strings.Contains(got, "mode=rwc") {
		t.Fatalf("dsn=%q", got)
	}
}

func TestFileSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "tasks.json")
	f, err := NewFileSlot(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data, err := f.Read()
	if err != nil || data != nil {
		t.Fatalf("read missing data=%q err=%v", data, err)
	}
	if err := f.Write([]byte(`{"3":[]}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) != `{"3":[]}` {
		t.Fatalf("file=%q", raw)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestMemorySlotCopies(t *testing.T) {
	m := NewMemorySlot(nil)
	buf := []byte("abc")
	if err := m.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf[0] = 'z'
	data, _ := m.Read()
	if string(data) != "abc" {
		t.Fatalf("read=%q, want abc", data)
	}
}

func TestOpenSlotBackends(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{backend: BackendSQLite, path: filepath.Join(dir, "a.db")},
		{backend: "", path: filepath.Join(dir, "b.db")},
		{backend: BackendFile, path: filepath.Join(dir, "c.json")},
		{backend: BackendMemory},
		{backend: "redis", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s, err := OpenSlot(tt.backend, tt.path, "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenSlot: %v", err)
			}
			defer s.Close()
			if err := s.Write([]byte("{}")); err != nil {
				t.Fatalf("write: %v", err)
			}
		})
	}
}

func TestBoardOverSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	s, err := Open(path, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b := board.New(s, nil)
	if err := b.AddTask(12, "water plants"); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := b.ToggleTask(12, 0); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	s.Close()

	s2, err := Open(path, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	reloaded := board.New(s2, nil)
	tasks := reloaded.Tasks(12)
	if len(tasks) != 1 || tasks[0].Text != "water plants" || !tasks[0].Completed {
		t.Fatalf("reloaded tasks=%v", tasks)
	}
}
