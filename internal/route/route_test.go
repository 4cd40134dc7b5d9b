package route

import (
	"os"
	"path/filepath"
	"testing"
)

// writeSite はテスト用のサイトディレクトリを作成する
func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("ファイルの書き込みに失敗しました: %v", err)
		}
	}
	return root
}

func newDefaultTable(t *testing.T, root string) *Table {
	t.Helper()
	table, err := NewTable(root, DefaultRoutes())
	if err != nil {
		t.Fatalf("テーブルの構築に失敗しました: %v", err)
	}
	return table
}

// TestNormalize はパスの正規化をテストする
func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"ルート", "/", "/"},
		{"空文字", "", "/"},
		{"通常のパス", "/wallet", "/wallet"},
		{"末尾スラッシュ", "/wallet/", "/wallet"},
		{"末尾スラッシュ2つは1つだけ除去", "/wallet//", "/wallet/"},
		{"クエリ文字列", "/wallet?x=1", "/wallet"},
		{"クエリ付き末尾スラッシュ", "/wallet/?x=1", "/wallet"},
		{"フラグメント", "/docs#intro", "/docs"},
		{"ルートのクエリ", "/?a=b", "/"},
		{"llms.txt", "/wallet/llms.txt", "/wallet/llms.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

// TestContentType はContent-Typeの推定をテストする
func TestContentType(t *testing.T) {
	testCases := []struct {
		name string
		file string
		want string
	}{
		{"HTML", "/srv/wallet/index.html", "text/html; charset=utf-8"},
		{"テキスト", "/srv/llms.txt", "text/plain; charset=utf-8"},
		{"その他", "/srv/logo.png", "application/octet-stream"},
		{"拡張子なし", "/srv/README", "application/octet-stream"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContentType(tc.file); got != tc.want {
				t.Errorf("ContentType(%q) = %q, want %q", tc.file, got, tc.want)
			}
		})
	}
}

// TestDefaultRoutes は組み込みルートテーブルの内容をテストする
func TestDefaultRoutes(t *testing.T) {
	routes := DefaultRoutes()

	if len(routes) != 28 {
		t.Errorf("ルート数が一致しません: got %d, want 28", len(routes))
	}
	if got := routes["/"]; got != filepath.Join("agentstack", "index.html") {
		t.Errorf("/ のファイルが一致しません: got %s", got)
	}
	for _, key := range []string{"/wallet", "/email", "/corp", "/id"} {
		if _, ok := routes[key]; !ok {
			t.Errorf("ルート %s が登録されていません", key)
		}
	}
	if _, ok := routes["/relay"]; ok {
		t.Error("/relay は登録されていないはずです")
	}
}

// TestNewTableRejectsInvalidRoutes は不正なルート定義の拒否をテストする
func TestNewTableRejectsInvalidRoutes(t *testing.T) {
	testCases := []struct {
		name   string
		routes map[string]string
	}{
		{"スラッシュなし", map[string]string{"wallet": "wallet/index.html"}},
		{"末尾スラッシュ", map[string]string{"/wallet/": "wallet/index.html"}},
		{"親ディレクトリ", map[string]string{"/x": "../secret.html"}},
		{"絶対パス", map[string]string{"/x": "/etc/passwd"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(t.TempDir(), tc.routes); err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
		})
	}
}

// TestResolve はパスの解決をテストする
func TestResolve(t *testing.T) {
	root := writeSite(t, map[string]string{
		"agentstack/index.html": "<h1>agentstack</h1>",
		"wallet/index.html":     "<h1>wallet</h1>",
		"wallet/llms.txt":       "wallet llms",
		"llms.txt":              "top llms",
		"a/b/llms.txt":          "nested",
	})
	// ディレクトリはファイルとして扱わない
	if err := os.MkdirAll(filepath.Join(root, "docs", "index.html"), 0o755); err != nil {
		t.Fatal(err)
	}
	table := newDefaultTable(t, root)

	testCases := []struct {
		name     string
		path     string
		wantOK   bool
		wantFile string
		wantType string
	}{
		{"ルート", "/", true, "agentstack/index.html", contentTypeHTML},
		{"セクション", "/wallet", true, "wallet/index.html", contentTypeHTML},
		{"末尾スラッシュ", "/wallet/", true, "wallet/index.html", contentTypeHTML},
		{"クエリ付き", "/wallet?x=1", true, "wallet/index.html", contentTypeHTML},
		{"ファイルなし", "/spawn", false, "", ""},
		{"未登録パス", "/nope", false, "", ""},
		{"ディレクトリ", "/docs", false, "", ""},
		{"トップのllms.txt", "/llms.txt", true, "llms.txt", contentTypeText},
		{"セクションのllms.txt", "/wallet/llms.txt", true, "wallet/llms.txt", contentTypeText},
		{"未作成のllms.txt", "/spawn/llms.txt", false, "", ""},
		{"3セグメントのllms.txt", "/a/b/llms.txt", false, "", ""},
		{"親ディレクトリ", "/../llms.txt", false, "", ""},
		{"カレントディレクトリ", "/./llms.txt", false, "", ""},
		{"空のセクション", "//llms.txt", false, "", ""},
		{"二重末尾スラッシュ", "/wallet//", false, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, ok := table.Resolve(tc.path)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.path, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			want := filepath.Join(root, filepath.FromSlash(tc.wantFile))
			if res.Path != want {
				t.Errorf("ファイルが一致しません: got %s, want %s", res.Path, want)
			}
			if res.ContentType != tc.wantType {
				t.Errorf("Content-Typeが一致しません: got %s, want %s", res.ContentType, tc.wantType)
			}
		})
	}
}

// TestResolveTopLevelLLMSMissing はトップのllms.txtがない場合をテストする
func TestResolveTopLevelLLMSMissing(t *testing.T) {
	table := newDefaultTable(t, writeSite(t, map[string]string{
		"wallet/index.html": "w",
	}))

	if _, ok := table.Resolve("/llms.txt"); ok {
		t.Error("llms.txt が存在しないのに解決されました")
	}
}

// TestTablePaths は登録パスの一覧をテストする
func TestTablePaths(t *testing.T) {
	table, err := NewTable(t.TempDir(), map[string]string{
		"/b": "b/index.html",
		"/":  "root/index.html",
		"/a": "a/index.html",
	})
	if err != nil {
		t.Fatalf("テーブルの構築に失敗しました: %v", err)
	}

	paths := table.Paths()
	want := []string{"/", "/a", "/b"}
	if len(paths) != len(want) {
		t.Fatalf("パス数が一致しません: got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
}
